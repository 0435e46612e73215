// Package movement implements route enumeration, embark/disembark, and
// the per-move stack/capacity invariants. Grounded on the teacher's
// pathing/adjacency helpers in internal/domain/board.go, generalized to
// hex terrain restrictions and ship-carried land units.
package movement

// StackLimit is the maximum number of one player's army units ever
// co-located on a single tile.
const StackLimit = 4

// ShipCapacity is the maximum number of land units one ship may carry.
const ShipCapacity = 2

// RomanRoadsMaxSteps bounds the Roman Roads special route: up to 4 steps
// city-to-non-city.
const RomanRoadsMaxSteps = 4

// ActionsPerActivation is the movement-action budget a movement phase
// starts with once a player's first movement action of the turn
// consumes one of their ordinary actions_left. Grounded on
// original_source/server/src/move_units.rs's MoveState::new() seeding
// movement_actions_left from a MOVEMENT_ACTIONS constant whose value was
// not present in the retrieved source; set here to match
// turnphase.ActionsPerTurn, the only other per-turn action budget this
// engine has.
const ActionsPerActivation = 3
