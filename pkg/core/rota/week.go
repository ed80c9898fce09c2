package rota

// BuildWeek plans every day in calendar order.
// It is a fold over input.Days: each day's step receives the previous closers and
// returns the updated carry. The carry starts empty for the week.
func BuildWeek(input WeekInput, rng Rand) *WeekPlan {
	plan := &WeekPlan{
		Days:      make([]DayPlan, 0, len(input.Days)),
		SlotCount: input.slotCount(),
	}

	carry := CarryState{}
	for _, day := range input.Days {
		var dayPlan DayPlan
		dayPlan, carry = PlanDay(carry, day, input, rng)
		plan.Days = append(plan.Days, dayPlan)
	}

	plan.Carry = carry
	return plan
}

// PlanDay computes both roles for one day and returns the carry for the next day.
// A role with nobody available keeps its previous closer.
func PlanDay(carry CarryState, day Day, input WeekInput, rng Rand) (DayPlan, CarryState) {
	dayPlan := DayPlan{
		Day:   day,
		Roles: make(map[Role]RolePlan, len(Roles())),
	}

	off := input.DaysOff[day.Key]
	next := carry

	for _, role := range Roles() {
		rolePlan := planRole(role, carry.LastCloser(role), off, input, rng)
		dayPlan.Roles[role] = rolePlan

		if closer := rolePlan.Closer(); closer != "" {
			next = next.WithCloser(role, closer)
		}
	}

	return dayPlan, next
}

func planRole(role Role, lastCloser Person, off DayOff, input WeekInput, rng Rand) RolePlan {
	offSet := off[role]
	available := Available(input.Roster[role], offSet)
	order := BuildOrder(available, lastCloser, input.Preferences[role], rng)

	return RolePlan{
		Available:  available,
		Off:        offSet,
		LastCloser: lastCloser,
		Order:      order,
		Grid:       Expand(order, input.slotCount()),
	}
}
