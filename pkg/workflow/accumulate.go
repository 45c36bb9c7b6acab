package workflow

// accumulate merges the units of result into the list held by a slot. Units are grouped
// by identity: a unit whose identity already appears is inserted right after the last
// unit sharing it, any other unit is appended. Existing units keep their relative order.
func accumulate(slot Slot, existing Value, bound bool, result Value) (Value, error) {
	if result.kind != KindUnit && result.kind != KindUnitList {
		return Value{}, GenerationFailure(slot, "cannot accumulate %s, expected unit or unit list", result.kind)
	}

	var merged []Unit
	if bound {
		if existing.kind != KindUnit && existing.kind != KindUnitList {
			return Value{}, GenerationFailure(slot, "cannot accumulate into %s", existing.kind)
		}
		merged = existing.Units()
	}

	for _, unit := range result.units {
		merged = insertAfterItem(merged, unit)
	}

	return UnitList(merged...), nil
}

func insertAfterItem(list []Unit, unit Unit) []Unit {
	identity := unit.Identity()
	at := -1
	for i := range list {
		if list[i].Identity() == identity {
			at = i
		}
	}

	if at < 0 || at == len(list)-1 {
		return append(list, unit)
	}

	list = append(list, Unit{})
	copy(list[at+2:], list[at+1:])
	list[at+1] = unit

	return list
}
