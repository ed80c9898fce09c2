package rota

import "slices"

// BuildOrder arranges one day's available people for a role, morning to evening.
//
// The evening anchor is chosen first so the morning selection can avoid it:
//   - Evening: never-evening people are excluded, then the first preferred evening anchor
//     (in pool order) is used; otherwise a random eligible person; if everyone is excluded,
//     the last available person closes.
//   - Morning: from the people left, the first preferred morning anchor that did not close
//     yesterday; otherwise a random person who did not close yesterday; if only yesterday's
//     closer is left, they open anyway.
//   - Everyone else fills the middle in random order.
//
// The result is always a permutation of available. An empty input gives an empty order.
func BuildOrder(available []Person, lastCloser Person, prefs Preferences, rng Rand) []Person {
	if len(available) == 0 {
		return []Person{}
	}

	evening := selectEveningAnchor(available, prefs, rng)

	remaining := without(available, evening)
	if len(remaining) == 0 {
		return []Person{evening}
	}

	morning := selectMorningAnchor(remaining, lastCloser, prefs, rng)

	middle := without(remaining, morning)
	rng.Shuffle(len(middle), func(i, j int) {
		middle[i], middle[j] = middle[j], middle[i]
	})

	order := make([]Person, 0, len(available))
	order = append(order, morning)
	order = append(order, middle...)
	order = append(order, evening)

	return order
}

// selectEveningAnchor picks the closer. available must be non-empty.
func selectEveningAnchor(available []Person, prefs Preferences, rng Rand) Person {
	eligible := filter(available, func(p Person) bool {
		return !slices.Contains(prefs.NeverEvening, p)
	})

	preferred := filter(eligible, func(p Person) bool {
		return slices.Contains(prefs.EveningAnchors, p)
	})
	if len(preferred) > 0 {
		return choosePreferred(preferred, prefs, rng)
	}

	if len(eligible) > 0 {
		return pick(rng, eligible)
	}

	// Everyone is excluded from closing
	return available[len(available)-1]
}

// selectMorningAnchor picks the opener. remaining must be non-empty.
func selectMorningAnchor(remaining []Person, lastCloser Person, prefs Preferences, rng Rand) Person {
	notLastCloser := func(p Person) bool {
		return lastCloser == "" || p != lastCloser
	}

	preferred := filter(remaining, func(p Person) bool {
		return slices.Contains(prefs.MorningAnchors, p) && notLastCloser(p)
	})
	if len(preferred) > 0 {
		return choosePreferred(preferred, prefs, rng)
	}

	candidates := filter(remaining, notLastCloser)
	if len(candidates) > 0 {
		return pick(rng, candidates)
	}

	// Only yesterday's closer is left, so the exclusion is waived
	return remaining[0]
}

// choosePreferred returns the first preferred candidate, or a random one when anchors are shuffled
func choosePreferred(preferred []Person, prefs Preferences, rng Rand) Person {
	if prefs.ShuffleAnchors {
		return pick(rng, preferred)
	}
	return preferred[0]
}

// Available returns the pool minus the off-set, preserving pool order and dropping duplicates
func Available(pool []Person, off []Person) []Person {
	result := make([]Person, 0, len(pool))
	for _, p := range pool {
		if slices.Contains(off, p) || slices.Contains(result, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func filter(people []Person, keep func(Person) bool) []Person {
	result := make([]Person, 0, len(people))
	for _, p := range people {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result
}

func without(people []Person, excluded Person) []Person {
	return filter(people, func(p Person) bool {
		return p != excluded
	})
}
