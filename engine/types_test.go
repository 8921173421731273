package engine

import "testing"

// TestActionEncodeRoundtrip verifies every encoder lands in its own range and
// decodes back to the same parameters.
func TestActionEncodeRoundtrip(t *testing.T) {
	for h := uint8(0); h < MaxHandEncode; h++ {
		if idx := EncodePlaceActive(h); true {
			got, ok := ActionIsPlaceActive(idx)
			if !ok || got != h {
				t.Errorf("PlaceActive(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}
		if idx := EncodePlaceBench(h); true {
			got, ok := ActionIsPlaceBench(idx)
			if !ok || got != h {
				t.Errorf("PlaceBench(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}
		if idx := EncodePlayToBench(h); true {
			got, ok := ActionIsPlayToBench(idx)
			if !ok || got != h {
				t.Errorf("PlayToBench(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}
		if idx := EncodePlayItem(h); true {
			got, ok := ActionIsPlayItem(idx)
			if !ok || got != h {
				t.Errorf("PlayItem(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}
		if idx := EncodePlaySupporter(h); true {
			got, ok := ActionIsPlaySupporter(idx)
			if !ok || got != h {
				t.Errorf("PlaySupporter(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}
		if idx := EncodeChooseOption(h); true {
			got, ok := ActionIsChooseOption(idx)
			if !ok || got != h {
				t.Errorf("ChooseOption(%d) -> %d -> (%d,%v)", h, idx, got, ok)
			}
		}

		for b := uint8(0); b < BoardSlots; b++ {
			idx := EncodeEvolve(h, b)
			gh, gb, ok := ActionIsEvolve(idx)
			if !ok || gh != h || gb != b {
				t.Errorf("Evolve(%d,%d) -> %d -> (%d,%d,%v)", h, b, idx, gh, gb, ok)
			}
		}
	}

	for b := uint8(0); b < BoardSlots; b++ {
		if idx := EncodeAttachEnergy(b); true {
			got, ok := ActionIsAttachEnergy(idx)
			if !ok || got != b {
				t.Errorf("AttachEnergy(%d) -> %d -> (%d,%v)", b, idx, got, ok)
			}
		}
		if idx := EncodeUseAbility(b); true {
			got, ok := ActionIsUseAbility(idx)
			if !ok || got != b {
				t.Errorf("UseAbility(%d) -> %d -> (%d,%v)", b, idx, got, ok)
			}
		}
		if idx := EncodeChooseTarget(b); true {
			got, ok := ActionIsChooseTarget(idx)
			if !ok || got != b {
				t.Errorf("ChooseTarget(%d) -> %d -> (%d,%v)", b, idx, got, ok)
			}
		}
	}

	for i := uint8(0); i < MaxBench; i++ {
		if idx := EncodeRetreat(i); true {
			got, ok := ActionIsRetreat(idx)
			if !ok || got != i {
				t.Errorf("Retreat(%d) -> %d -> (%d,%v)", i, idx, got, ok)
			}
		}
		if idx := EncodePromote(i); true {
			got, ok := ActionIsPromote(idx)
			if !ok || got != i {
				t.Errorf("Promote(%d) -> %d -> (%d,%v)", i, idx, got, ok)
			}
		}
	}

	for et := EnergyType(0); et < NumConcreteEnergy; et++ {
		idx := EncodeSetEnergyZone(et)
		got, ok := ActionIsSetEnergyZone(idx)
		if !ok || got != et {
			t.Errorf("SetEnergyZone(%d) -> %d -> (%d,%v)", et, idx, got, ok)
		}
	}

	for a := uint8(0); a < 3; a++ {
		idx := EncodeAttack(a)
		got, ok := ActionIsAttack(idx)
		if !ok || got != a {
			t.Errorf("Attack(%d) -> %d -> (%d,%v)", a, idx, got, ok)
		}
	}
}

// TestActionRangesDisjoint verifies no index below the reserved block decodes
// as more than one action family.
func TestActionRangesDisjoint(t *testing.T) {
	for idx := uint16(0); idx < ActionSpaceSize; idx++ {
		matches := 0
		if _, ok := ActionIsPlaceActive(idx); ok {
			matches++
		}
		if _, ok := ActionIsPlaceBench(idx); ok {
			matches++
		}
		if idx == ActionConfirmSetup {
			matches++
		}
		if _, ok := ActionIsPlayToBench(idx); ok {
			matches++
		}
		if _, _, ok := ActionIsEvolve(idx); ok {
			matches++
		}
		if _, ok := ActionIsSetEnergyZone(idx); ok {
			matches++
		}
		if _, ok := ActionIsAttachEnergy(idx); ok {
			matches++
		}
		if _, ok := ActionIsRetreat(idx); ok {
			matches++
		}
		if _, ok := ActionIsUseAbility(idx); ok {
			matches++
		}
		if _, ok := ActionIsPlayItem(idx); ok {
			matches++
		}
		if _, ok := ActionIsPlaySupporter(idx); ok {
			matches++
		}
		if _, ok := ActionIsAttack(idx); ok {
			matches++
		}
		if idx == ActionEndTurn {
			matches++
		}
		if _, ok := ActionIsChooseTarget(idx); ok {
			matches++
		}
		if _, ok := ActionIsChooseOption(idx); ok {
			matches++
		}
		if _, ok := ActionIsPromote(idx); ok {
			matches++
		}

		want := 1
		if idx >= actionReserved {
			want = 0
		}
		if matches != want {
			t.Errorf("index %d decodes %d ways, want %d", idx, matches, want)
		}
	}
}
