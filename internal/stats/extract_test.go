package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strptr(s string) *string { return &s }

func TestExtractHealth(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: "Health 600 (+ 90)"},
	})

	require.Equal(t, "Aatrox", record.Name)
	require.Equal(t, strptr("600"), record.HealthBase)
	require.Equal(t, strptr("90"), record.HealthGrowth)
}

func TestExtractHealthWithoutGrowth(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: "Health 600"},
	})

	require.Equal(t, strptr("600"), record.HealthBase)
	require.Nil(t, record.HealthGrowth)
}

func TestExtractResource(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Annie", []Observation{
		{Field: "resource", Text: "Mana 100 (+ 10)"},
	})

	require.Equal(t, strptr("Mana"), record.ResourceName)
	require.Equal(t, strptr("100"), record.ResourceBase)
	require.Equal(t, strptr("10"), record.ResourceGrowth)
}

func TestExtractResourcePlaceholderSkipped(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	// "Resource" is the wiki's placeholder for champions without a secondary
	// resource; all three fields must stay unset.
	record := engine.Extract("Garen", []Observation{
		{Field: "resource", Text: "Resource N/A"},
	})

	require.Nil(t, record.ResourceName)
	require.Nil(t, record.ResourceBase)
	require.Nil(t, record.ResourceGrowth)
}

func TestExtractResourceRegenPlaceholderSkipped(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Garen", []Observation{
		{Field: "resource regen", Text: "Resource regen. N/A"},
	})

	require.Nil(t, record.ResourceRegenBase)
	require.Nil(t, record.ResourceRegenGrowth)
}

func TestExtractResourceRegen(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Annie", []Observation{
		{Field: "resource regen", Text: "Mana regen. (per 5s) 8 (+ 0.8)"},
	})

	require.Equal(t, strptr("8"), record.ResourceRegenBase)
	require.Equal(t, strptr("0.8"), record.ResourceRegenGrowth)
}

func TestExtractMismatchLeavesFieldUnset(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: "not a health line"},
		{Field: "armor", Text: "Armor thirty eight"},
	})

	require.Nil(t, record.HealthBase)
	require.Nil(t, record.HealthGrowth)
	require.Nil(t, record.ArmorBase)
}

func TestExtractEmptyTextSkipped(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: ""},
	})

	require.Nil(t, record.HealthBase)
}

func TestExtractFirstQualifyingObservationWins(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: "Health 600 (+ 90)"},
		{Field: "health", Text: "Health 999 (+ 99)"},
	})

	require.Equal(t, strptr("600"), record.HealthBase)
	require.Equal(t, strptr("90"), record.HealthGrowth)
}

func TestExtractPathingRadiusMatchesByPrefix(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "pathing radius (footprint)", Text: "Pathing radius 35"},
	})

	require.Equal(t, strptr("35"), record.PathingRadius)
}

func TestExtractIgnoredPrefixesProduceNothing(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "urf-dmg-dealt", Text: "Damage Dealt +5%"},
		{Field: "nb-health", Text: "Health 700"},
		{Field: "ar_health", Text: "Health 700"},
	})

	require.Equal(t, &ChampionStats{Name: "Aatrox"}, record)
}

func TestExtractAramFields(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Ziggs", []Observation{
		{Field: "aram-dmg-dealt", Text: "Damage Dealt +5%"},
		{Field: "aram-dmg-taken", Text: "Damage Received -5%"},
		{Field: "aram_ability_haste", Text: "Ability Haste +10"},
		{Field: "aram_tenacity", Text: "Tenacity & Slow Resist +20%"},
	})

	require.Equal(t, strptr("+5"), record.AramDamageDealtBonusPercentage)
	require.Equal(t, strptr("-5"), record.AramDamageTakenBonusPercentage)
	require.Equal(t, strptr("+10"), record.AramAbilityHasteBonus)
	require.Equal(t, strptr("+20"), record.AramTenacityBonusPercentage)
}

func TestExtractFullPanel(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	record := engine.Extract("Aatrox", []Observation{
		{Field: "health", Text: "Health 2606 (+ 104)"},
		{Field: "resource", Text: "Blood Well N/A"},
		{Field: "health regen", Text: "Health regen. (per 5s) 14.45 (+ 0.85)"},
		{Field: "armor", Text: "Armor 106.3 (+ 4.45)"},
		{Field: "attack damage", Text: "Attack damage 129.5 (+ 4.5)"},
		{Field: "mr", Text: "Magic resist. 53.1 (+ 2.05)"},
		{Field: "critical damage", Text: "Crit. damage 175%"},
		{Field: "ms", Text: "Move. speed 345"},
		{Field: "range", Text: "Attack range 175"},
		{Field: "attack speed", Text: "Base AS 0.651"},
		{Field: "windup", Text: "Attack windup 23.883%"},
		{Field: "as ratio", Text: "AS ratio N/A"},
		{Field: "gameplay radius", Text: "Gameplay radius 65"},
	})

	require.Equal(t, strptr("2606"), record.HealthBase)
	require.Equal(t, strptr("104"), record.HealthGrowth)
	require.Equal(t, strptr("Blood Well"), record.ResourceName)
	require.Equal(t, strptr("N/A"), record.ResourceBase)
	require.Equal(t, strptr("14.45"), record.HealthRegenBase)
	require.Equal(t, strptr("106.3"), record.ArmorBase)
	require.Equal(t, strptr("4.45"), record.ArmorGrowth)
	require.Equal(t, strptr("129.5"), record.AttackBase)
	require.Equal(t, strptr("53.1"), record.MagicResistBase)
	require.Equal(t, strptr("175"), record.CritDamagePercentage)
	require.Equal(t, strptr("345"), record.MovementSpeed)
	require.Equal(t, strptr("175"), record.AttackRange)
	require.Equal(t, strptr("0.651"), record.AttackSpeedBase)
	require.Equal(t, strptr("23.883"), record.AttackWindupPercentage)
	// "AS ratio N/A" does not fit the numeric pattern; leniency leaves it unset.
	require.Nil(t, record.AttackSpeedRatio)
	require.Equal(t, strptr("65"), record.GameplayRadius)
}

func TestExtractDeterministic(t *testing.T) {
	t.Parallel()
	engine := NewEngine(zap.NewNop())

	observations := []Observation{
		{Field: "health", Text: "Health 600 (+ 90)"},
		{Field: "resource", Text: "Mana 100 (+ 10)"},
		{Field: "armor", Text: "Armor 38 (+ 4.45)"},
		{Field: "mystery-field", Text: "Mystery 42"},
	}

	first := engine.Extract("Ahri", observations)
	second := engine.Extract("Ahri", observations)
	require.Equal(t, first, second)
}

func TestRuleTableKeysUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, len(ruleTable))
	for _, r := range ruleTable {
		require.Falsef(t, seen[r.key], "duplicate rule key %q", r.key)
		seen[r.key] = true
	}
}
