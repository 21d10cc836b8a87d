package engine

import (
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

// Outcome is the state of an encounter.
type Outcome int

const (
	Ongoing Outcome = iota
	Fled
	EnemyDefeated
	PlayerDefeated
)

func (o Outcome) String() string {
	switch o {
	case Fled:
		return "fled"
	case EnemyDefeated:
		return "enemy_defeated"
	case PlayerDefeated:
		return "player_defeated"
	default:
		return "ongoing"
	}
}

// Combat actions offered on the player's turn.
const (
	ActionAttack = "attack"
	ActionDefend = "defend"
	ActionUse    = "use"
	ActionFlee   = "flee"
)

// Encounter is one fight against a single enemy instance. The enemy is a
// clone of its template and lives only as long as the encounter.
type Encounter struct {
	Enemy   types.Enemy
	Boss    bool
	Rounds  int
	Outcome Outcome
}

// NewEncounter clones the template and sets the enemy to full health.
func NewEncounter(def types.EnemyDef, boss bool) *Encounter {
	return &Encounter{
		Enemy: types.Enemy{EnemyDef: def, CurrentHealth: def.Health},
		Boss:  boss,
	}
}

// Start reports the encounter.
func (enc *Encounter) Start() []types.Event {
	return []types.Event{events.New(events.CombatStarted,
		"enemy", enc.Enemy.ID, "name", enc.Enemy.Name, "health", enc.Enemy.CurrentHealth, "boss", enc.Boss)}
}

// Done reports whether the encounter reached a terminal state.
func (enc *Encounter) Done() bool {
	return enc.Outcome != Ongoing
}

// AttackDamage is strength + U(1,6).
func AttackDamage(strength int, src Source) int {
	return strength + Roll(src, 6)
}

// DefendHeal is U(5,10).
func DefendHeal(src Source) int {
	return Between(src, 5, 10)
}

// EnemyDamage is max(0, strength - U(0,3)).
func EnemyDamage(strength int, src Source) int {
	return max(0, strength-Between(src, 0, 3))
}

// FleeChance is agility * 0.1; anything at or above 1 always succeeds.
func FleeChance(agility int) float64 {
	return float64(agility) * 0.1
}

// Attack hits the enemy, then the enemy answers if still standing.
func (enc *Encounter) Attack(c *types.Character, src Source) []types.Event {
	dmg := AttackDamage(c.Strength, src)
	enc.Enemy.CurrentHealth -= dmg
	evts := []types.Event{events.New(events.PlayerAttacked,
		"enemy", enc.Enemy.ID, "damage", dmg, "enemy_health", enc.Enemy.CurrentHealth)}
	return append(evts, enc.EnemyTurn(c, src)...)
}

// Defend recovers some health, capped at max. The enemy still acts.
func (enc *Encounter) Defend(c *types.Character, src Source) []types.Event {
	gained := state.Heal(c, DefendHeal(src))
	evts := []types.Event{events.New(events.PlayerDefended, "healed", gained, "health", c.Health)}
	return append(evts, enc.EnemyTurn(c, src)...)
}

// Flee ends the encounter on success and skips the enemy's turn. On
// failure the enemy acts.
func (enc *Encounter) Flee(c *types.Character, src Source) []types.Event {
	if Chance(src, FleeChance(c.Agility)) {
		enc.Outcome = Fled
		enc.Rounds++
		return []types.Event{events.New(events.Fled, "enemy", enc.Enemy.ID)}
	}
	evts := []types.Event{events.New(events.FleeFailed, "enemy", enc.Enemy.ID)}
	return append(evts, enc.EnemyTurn(c, src)...)
}

// EnemyTurn closes a round: the enemy strikes if alive, then the terminal
// checks run with player defeat ahead of enemy defeat. Item use calls it
// directly whatever the item outcome was.
func (enc *Encounter) EnemyTurn(c *types.Character, src Source) []types.Event {
	var evts []types.Event
	if enc.Enemy.CurrentHealth > 0 {
		dmg := EnemyDamage(enc.Enemy.Strength, src)
		state.Damage(c, dmg)
		evts = append(evts, events.New(events.EnemyAttacked,
			"enemy", enc.Enemy.ID, "damage", dmg, "health", c.Health))
	}
	enc.Rounds++

	switch {
	case !state.Alive(c):
		enc.Outcome = PlayerDefeated
		evts = append(evts, events.New(events.PlayerDefeated, "enemy", enc.Enemy.ID))
	case enc.Enemy.CurrentHealth <= 0:
		enc.Outcome = EnemyDefeated
		evts = append(evts, events.New(events.EnemyDefeated,
			"enemy", enc.Enemy.ID, "boss", enc.Boss))
	}
	return evts
}
