// Package stats defines the champion stat schema and the extraction engine
// that maps labeled text blocks from the wiki's stat panel onto it.
package stats

// ChampionStats holds every attribute the stat panel can carry for one
// champion. Values are kept as strings exactly as rendered on the page; a nil
// field means the attribute was not observed (or did not parse) on that page,
// which is expected for many champions and is not an error.
type ChampionStats struct {
	Name string `json:"name"`

	HealthBase          *string `json:"health_base"`
	HealthGrowth        *string `json:"health_growth"`
	ResourceName        *string `json:"resource_name"`
	ResourceBase        *string `json:"resource_base"`
	ResourceGrowth      *string `json:"resource_growth"`
	HealthRegenBase     *string `json:"health_regen_base"`
	HealthRegenGrowth   *string `json:"health_regen_growth"`
	ResourceRegenBase   *string `json:"resource_regen_base"`
	ResourceRegenGrowth *string `json:"resource_regen_growth"`
	ArmorBase           *string `json:"armor_base"`
	ArmorGrowth         *string `json:"armor_growth"`
	AttackBase          *string `json:"attack_base"`
	AttackGrowth        *string `json:"attack_growth"`
	MagicResistBase     *string `json:"magic_resist_base"`
	MagicResistGrowth   *string `json:"magic_resist_growth"`

	CritDamagePercentage       *string `json:"crit_damage_percentage"`
	MovementSpeed              *string `json:"movement_speed"`
	AttackRange                *string `json:"attack_range"`
	AttackSpeedBase            *string `json:"attack_speed_base"`
	AttackWindupPercentage     *string `json:"attack_windup_percentage"`
	AttackSpeedRatio           *string `json:"attack_speed_ratio"`
	AttackSpeedBonusPercentage *string `json:"attack_speed_bonus_percentage"`
	MissileSpeed               *string `json:"missile_speed"`

	GameplayRadius    *string `json:"gameplay_radius"`
	SelectionRadius   *string `json:"selection_radius"`
	PathingRadius     *string `json:"pathing_radius"`
	AcquisitionRadius *string `json:"acquisition_radius"`

	AramDamageDealtBonusPercentage *string `json:"aram_damage_dealt_bonus_percentage"`
	AramDamageTakenBonusPercentage *string `json:"aram_damage_taken_bonus_percentage"`
	AramAttackSpeedBonusPercentage *string `json:"aram_attack_speed_bonus_percentage"`
	AramAbilityHasteBonus          *string `json:"aram_ability_haste_bonus"`
	AramEnergyRegenBonusPercentage *string `json:"aram_energy_regen_bonus_percentage"`
	AramHealingBonusPercentage     *string `json:"aram_healing_bonus_percentage"`
	AramShieldingBonusPercentage   *string `json:"aram_shielding_bonus_percentage"`
	AramTenacityBonusPercentage    *string `json:"aram_tenacity_bonus_percentage"`
}

// Observation is one labeled text block harvested from the stat panel: the
// element's data-source attribute and its flattened inner text.
type Observation struct {
	Field string
	Text  string
}
