package combat

// Outcome is the result of resolving one player move against one enemy move.
//
// Both moves resolve simultaneously from the pre-turn snapshot.
type Outcome struct {
	PlayerMove Move
	EnemyMove  Move
	// DamageDealt is the raw damage the player's move inflicts, before shield absorption.
	DamageDealt int
	// DamageReceived is the raw damage the enemy's move inflicts, before shield absorption.
	DamageReceived int
	// PlayerHealthLost and EnemyHealthLost are the health each side loses after absorption.
	PlayerHealthLost int
	EnemyHealthLost  int
	// PlayerShieldDelta and EnemyShieldDelta are the net shield change over the turn:
	// shield gained by defending minus shield spent absorbing damage.
	PlayerShieldDelta int
	EnemyShieldDelta  int
	PlayerHealth      int
	PlayerShield      int
	EnemyHealth       int
	EnemyShield       int
}

// NetValue scores the outcome from the player's point of view:
// damage dealt minus health lost, plus the weighted shield differential.
func (o Outcome) NetValue(p Params) float64 {
	swing := float64(o.DamageDealt - o.PlayerHealthLost)
	return swing + p.ShieldWeight*float64(o.PlayerShieldDelta-o.EnemyShieldDelta)
}

// Simulate resolves player against enemy using the health and shield in s.
//
// Precondition: s has passed Validate.
// Postcondition: PlayerHealth, PlayerShield, EnemyHealth, and EnemyShield are all >= 0.
func Simulate(player, enemy Move, s Snapshot, p Params) Outcome {
	dealt := strike(player, enemy)
	received := strike(enemy, player)

	pHealth, pShield := absorb(s.Player.Health.Current, s.Player.Shield.Current, shieldGain(player, p), received)
	eHealth, eShield := absorb(s.Enemy.Health.Current, s.Enemy.Shield.Current, shieldGain(enemy, p), dealt)

	return Outcome{
		PlayerMove:        player,
		EnemyMove:         enemy,
		DamageDealt:       dealt,
		DamageReceived:    received,
		PlayerHealthLost:  s.Player.Health.Current - pHealth,
		EnemyHealthLost:   s.Enemy.Health.Current - eHealth,
		PlayerShieldDelta: pShield - s.Player.Shield.Current,
		EnemyShieldDelta:  eShield - s.Enemy.Shield.Current,
		PlayerHealth:      pHealth,
		PlayerShield:      pShield,
		EnemyHealth:       eHealth,
		EnemyShield:       eShield,
	}
}

// strike returns the raw damage attacker inflicts on defender. Defend deals none.
func strike(attacker, defender Move) int {
	if attacker.IsDefend() {
		return 0
	}
	return Damage(attacker.Damage, MoveMultiplier(attacker, defender))
}

func shieldGain(m Move, p Params) int {
	if m.IsDefend() {
		return p.ShieldOnDefend
	}
	return 0
}

// absorb applies dmg to a side that first gains gain shield.
// Shield soaks damage before health; health floors at zero.
func absorb(health, shield, gain, dmg int) (int, int) {
	shield += gain
	soaked := min(dmg, shield)
	shield -= soaked
	health -= dmg - soaked
	if health < 0 {
		health = 0
	}
	return health, shield
}
