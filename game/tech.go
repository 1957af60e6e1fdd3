package game

import "fmt"

// Power is the capability set of a tech card variant.
type Power interface {
	CanUsePower(gs *GameState, player int, m TechMove) bool
	UsePower(gs *GameState, player int, m TechMove)
	CanUseDiscard(gs *GameState, player int, m TechMove) bool
	UseDiscard(gs *GameState, player int, m TechMove)
}

func (k CardKind) Power() Power {
	switch k {
	case AlienCity, AlienMonument, ResourceCache:
		return noPower{}
	case BoosterPod:
		return boosterPod{}
	case DataCrystal:
		return dataCrystal{}
	case GravityManipulator:
		return gravityManipulator{}
	case HolographicDecoy:
		return holographicDecoy{}
	case OrbitalTeleporter:
		return orbitalTeleporter{}
	case PlasmaCannon:
		return plasmaCannon{}
	case PolarityDevice:
		return polarityDevice{}
	case StasisBeam:
		return stasisBeam{}
	case TemporalWarper:
		return temporalWarper{}
	}
	panic(fmt.Sprintf("unknown card kind %d", int(k)))
}

// noPower is embedded by variants that only support one of the two actions.
type noPower struct{}

func (noPower) CanUsePower(*GameState, int, TechMove) bool   { return false }
func (noPower) UsePower(*GameState, int, TechMove)           {}
func (noPower) CanUseDiscard(*GameState, int, TechMove) bool { return false }
func (noPower) UseDiscard(*GameState, int, TechMove)         {}

// powerCost applies the Pohl Foothills discount to a fuel cost.
func (gs *GameState) powerCost(player, base int) int {
	if gs.HasBonus(player, PohlFoothills) {
		return max(base-1, 0)
	}
	return base
}

func (gs *GameState) affordPower(player, base int) bool {
	return gs.canAfford(player, gs.powerCost(player, base), 0)
}

func (gs *GameState) payPower(player, base int) {
	gs.pay(player, gs.powerCost(player, base), 0)
}

func (gs *GameState) validShip(id ShipID) bool {
	return id >= 0 && int(id) < len(gs.Ships)
}

func (gs *GameState) validPlayer(player int) bool {
	return player >= 0 && player < len(gs.Players)
}

func validRegion(k RegionKind) bool {
	return k >= 0 && k < NumRegions
}

// ownUndocked reports whether the ship is the player's and still waiting to be placed.
func (gs *GameState) ownUndocked(player int, id ShipID) bool {
	if !gs.validShip(id) {
		return false
	}
	s := gs.Ships[id]
	return s.Owner == player && s.Rolled() && !s.Docked()
}

// dockedTarget reports whether the ship sits at an orbital a weapon or teleporter can reach.
func (gs *GameState) dockedTarget(id ShipID) bool {
	if !gs.validShip(id) {
		return false
	}
	s := gs.Ships[id]
	return s.Active && s.Docked() &&
		s.Dock.Orbital != MaintenanceBay && s.Dock.Orbital != TerraformingStation
}

type boosterPod struct{ noPower }

func (boosterPod) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && gs.ownUndocked(player, m.Ship) && gs.Ships[m.Ship].Value < 6
}

func (boosterPod) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	gs.Ships[m.Ship].Value++
}

type stasisBeam struct{ noPower }

func (stasisBeam) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && gs.ownUndocked(player, m.Ship) && gs.Ships[m.Ship].Value > 1
}

func (stasisBeam) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	gs.Ships[m.Ship].Value--
}

func (stasisBeam) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	return validRegion(m.Region) && !gs.Regions[m.Region].Isolation
}

func (stasisBeam) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.moveField(IsolationField, m.Region)
}

type polarityDevice struct{ noPower }

func (polarityDevice) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && gs.ownUndocked(player, m.Ship)
}

func (polarityDevice) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	s := &gs.Ships[m.Ship]
	s.Value = 7 - s.Value
}

// CanUseDiscard checks a swap of one colony of Player on Region with one colony of OtherPlayer
// on OtherRegion.
func (polarityDevice) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	if !validRegion(m.Region) || !validRegion(m.OtherRegion) || m.Region == m.OtherRegion {
		return false
	}
	if !gs.validPlayer(m.Player) || !gs.validPlayer(m.OtherPlayer) || m.Player == m.OtherPlayer {
		return false
	}
	return gs.Regions[m.Region].Colonies[m.Player] > 0 && gs.Regions[m.OtherRegion].Colonies[m.OtherPlayer] > 0
}

func (polarityDevice) UseDiscard(gs *GameState, player int, m TechMove) {
	a, b := &gs.Regions[m.Region], &gs.Regions[m.OtherRegion]
	a.Colonies[m.Player]--
	a.Colonies[m.OtherPlayer]++
	b.Colonies[m.OtherPlayer]--
	b.Colonies[m.Player]++
	gs.postEvent(EventColonyPlaced, m.Region)
}

type temporalWarper struct{ noPower }

func (temporalWarper) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && gs.ownUndocked(player, m.Ship)
}

func (temporalWarper) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	gs.Ships[m.Ship].Value = gs.rollDie()
	gs.queueSound(SoundRoll)
}

func (temporalWarper) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	if !gs.DiscardPile.Contains(m.Target) {
		return false
	}
	kind := gs.Cards[m.Target].Kind
	return kind == TemporalWarper || !gs.OwnsKind(player, kind)
}

func (temporalWarper) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.giveCard(m.Target, player)
}

type gravityManipulator struct{ noPower }

func (gravityManipulator) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && m.Ship != m.OtherShip &&
		gs.ownUndocked(player, m.Ship) && gs.ownUndocked(player, m.OtherShip) &&
		gs.Ships[m.Ship].Value < 6 && gs.Ships[m.OtherShip].Value > 1
}

func (gravityManipulator) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	gs.Ships[m.Ship].Value++
	gs.Ships[m.OtherShip].Value--
}

type orbitalTeleporter struct{ noPower }

func (orbitalTeleporter) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && gs.dockedTarget(m.Ship) && gs.Ships[m.Ship].Owner == player
}

func (orbitalTeleporter) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	from := gs.Ships[m.Ship].Dock.Orbital
	gs.undock(m.Ship)
	gs.Ships[m.Ship].TeleportRestriction = from
}

func (orbitalTeleporter) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	if !validRegion(m.Region) || !validRegion(m.OtherRegion) || m.Region == m.OtherRegion {
		return false
	}
	return gs.Regions[m.Region].Colonies[player] > 0 && !gs.Regions[m.OtherRegion].Repulsor
}

func (orbitalTeleporter) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.Regions[m.Region].Colonies[player]--
	gs.Regions[m.OtherRegion].Colonies[player]++
	gs.postEvent(EventColonyPlaced, m.OtherRegion)
}

type dataCrystal struct{ noPower }

func (dataCrystal) CanUsePower(gs *GameState, player int, m TechMove) bool {
	if !validRegion(m.Region) || gs.Players[player].BorrowedRegion != NoRegion {
		return false
	}
	r := &gs.Regions[m.Region]
	return !r.Isolation && r.Controller() != player
}

func (dataCrystal) UsePower(gs *GameState, player int, m TechMove) {
	gs.Players[player].BorrowedRegion = m.Region
}

func (dataCrystal) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	return validRegion(m.Region) && !gs.Regions[m.Region].Positron
}

func (dataCrystal) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.moveField(PositronField, m.Region)
}

type plasmaCannon struct{ noPower }

func (plasmaCannon) opponentTarget(gs *GameState, player int, id ShipID) bool {
	if !gs.dockedTarget(id) {
		return false
	}
	owner := gs.Ships[id].Owner
	return owner != player && owner != Unassigned
}

func (c plasmaCannon) CanUsePower(gs *GameState, player int, m TechMove) bool {
	return gs.affordPower(player, 1) && c.opponentTarget(gs, player, m.Ship)
}

func (plasmaCannon) UsePower(gs *GameState, player int, m TechMove) {
	gs.payPower(player, 1)
	gs.moveToMaintenanceBay(m.Ship)
	gs.queueSound(SoundBlast)
}

func (c plasmaCannon) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	if !c.opponentTarget(gs, player, m.Ship) {
		return false
	}
	s := gs.Ships[m.Ship]
	return !s.Artifact && gs.NativeShipCount(s.Owner) > StartingShips
}

func (plasmaCannon) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.undock(m.Ship)
	s := &gs.Ships[m.Ship]
	s.Active = false
	s.Value = 0
	gs.postEvent(EventShipDestroyed, m.Ship)
	gs.queueSound(SoundBlast)
}

type holographicDecoy struct{ noPower }

func (holographicDecoy) CanUseDiscard(gs *GameState, player int, m TechMove) bool {
	return validRegion(m.Region) && !gs.Regions[m.Region].Repulsor
}

func (holographicDecoy) UseDiscard(gs *GameState, player int, m TechMove) {
	gs.moveField(RepulsorField, m.Region)
}
