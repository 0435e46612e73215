package combat

// Data is the serializable form of a Battle. Battle keeps four fields
// unexported (pendingSideIsAttacker/pendingDefenderHits/tacticsAsked/
// pendingTacticsAttacker) so external
// packages can't fork a battle mid-round by poking at them directly;
// Data surfaces the same information under exported names for callers
// that need to persist a suspended battle across a snapshot.
type Data struct {
	Attacker              *Side
	Defender              *Side
	CityTile              bool
	Round                 int
	Phase                 Phase
	Outcome               Outcome
	PendingSideIsAttacker  bool
	PendingDefenderHits    int
	TacticsAsked           int
	PendingTacticsAttacker bool
	AttackerCasualties     []uint32
	DefenderCasualties     []uint32
}

// ToData freezes b.
func (b *Battle) ToData() Data {
	return Data{
		Attacker:              b.Attacker,
		Defender:              b.Defender,
		CityTile:              b.CityTile,
		Round:                 b.Round,
		Phase:                 b.Phase,
		Outcome:               b.Outcome,
		PendingSideIsAttacker:  b.pendingSideIsAttacker,
		PendingDefenderHits:    b.pendingDefenderHits,
		TacticsAsked:           b.tacticsAsked,
		PendingTacticsAttacker: b.pendingTacticsAttacker,
		AttackerCasualties:     append([]uint32{}, b.AttackerCasualties...),
		DefenderCasualties:     append([]uint32{}, b.DefenderCasualties...),
	}
}

// FromData rebuilds a Battle from d.
func FromData(d Data) *Battle {
	return &Battle{
		Attacker:              d.Attacker,
		Defender:              d.Defender,
		CityTile:              d.CityTile,
		Round:                 d.Round,
		Phase:                 d.Phase,
		Outcome:               d.Outcome,
		pendingSideIsAttacker:  d.PendingSideIsAttacker,
		pendingDefenderHits:    d.PendingDefenderHits,
		tacticsAsked:           d.TacticsAsked,
		pendingTacticsAttacker: d.PendingTacticsAttacker,
		AttackerCasualties:     d.AttackerCasualties,
		DefenderCasualties:     d.DefenderCasualties,
	}
}
