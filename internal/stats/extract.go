package stats

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// matchKind controls how a rule's key is compared against an observation's
// field label. Almost every label matches exactly; the prefix kind exists for
// the handful of labels the wiki suffixes with extra qualifiers.
type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
)

// groups holds the named capture groups of one rule application. Optional
// groups that did not participate in the match are absent (empty).
type groups map[string]string

// val returns the group's value, or nil when the group is empty or missing.
func (g groups) val(name string) *string {
	s, ok := g[name]
	if !ok || s == "" {
		return nil
	}
	return &s
}

type rule struct {
	key     string
	kind    matchKind
	pattern *regexp.Regexp
	apply   func(*ChampionStats, groups)
}

// Placeholders the wiki renders when a champion has no secondary resource.
const (
	noResourceName      = "Resource"
	noResourceRegenBase = "N/A"
)

// ignoredFieldPrefixes lists data-source prefixes for game modes whose stat
// blocks duplicate or are irrelevant to the schema. Observations under these
// labels are dropped without a warning.
var ignoredFieldPrefixes = []string{
	"nb-", "nb_",
	"ofa-", "ofa_",
	"urf-",
	"usb-", "usb_",
	"ar_",
}

// ruleTable is the schema: one entry per known data-source label. Adding a
// field is a single registration here. Patterns are anchored at the start of
// the flattened text; trailing text is ignored.
var ruleTable = []rule{
	{
		key:     "health",
		pattern: regexp.MustCompile(`(?i)^Health (?P<health_base>[\d.]+)( \(\+ (?P<health_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			s.HealthBase = g.val("health_base")
			s.HealthGrowth = g.val("health_growth")
		},
	},
	{
		key:     "resource",
		pattern: regexp.MustCompile(`(?i)^(?P<resource_name>[ a-zA-Z]+) (?P<resource_base>N/A|[\d.]+)( \(\+ (?P<resource_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			name := g.val("resource_name")
			if name == nil || *name == noResourceName {
				return
			}
			s.ResourceName = name
			s.ResourceBase = g.val("resource_base")
			s.ResourceGrowth = g.val("resource_growth")
		},
	},
	{
		key:     "health regen",
		pattern: regexp.MustCompile(`(?i)^Health regen. \(per 5s\) (?P<health_regen_base>[\d.]+)( \(\+ (?P<health_regen_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			s.HealthRegenBase = g.val("health_regen_base")
			s.HealthRegenGrowth = g.val("health_regen_growth")
		},
	},
	{
		key:     "resource regen",
		pattern: regexp.MustCompile(`(?i)^[ a-zA-Z]* regen.( \(per 5s\))? (?P<resource_regen_base>N/A|[\d.]+)( \(\+ (?P<resource_regen_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			base := g.val("resource_regen_base")
			if base == nil || *base == noResourceRegenBase {
				return
			}
			s.ResourceRegenBase = base
			s.ResourceRegenGrowth = g.val("resource_regen_growth")
		},
	},
	{
		key:     "armor",
		pattern: regexp.MustCompile(`(?i)^Armor (?P<armor_base>[\d.]+)( \(\+ (?P<armor_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			s.ArmorBase = g.val("armor_base")
			s.ArmorGrowth = g.val("armor_growth")
		},
	},
	{
		key:     "attack damage",
		pattern: regexp.MustCompile(`(?i)^Attack damage (?P<attack_base>[\d.]+)( \(\+ (?P<attack_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackBase = g.val("attack_base")
			s.AttackGrowth = g.val("attack_growth")
		},
	},
	{
		key:     "mr",
		pattern: regexp.MustCompile(`(?i)^Magic resist. (?P<magic_resist_base>[\d.]+)( \(\+ (?P<magic_resist_growth>[\d.]+)\))?`),
		apply: func(s *ChampionStats, g groups) {
			s.MagicResistBase = g.val("magic_resist_base")
			s.MagicResistGrowth = g.val("magic_resist_growth")
		},
	},
	{
		key:     "critical damage",
		pattern: regexp.MustCompile(`(?i)^Crit. damage (?P<crit_damage_percentage>[\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.CritDamagePercentage = g.val("crit_damage_percentage")
		},
	},
	{
		key:     "ms",
		pattern: regexp.MustCompile(`(?i)^Move. speed (?P<movement_speed>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.MovementSpeed = g.val("movement_speed")
		},
	},
	{
		key:     "range",
		pattern: regexp.MustCompile(`(?i)^Attack range (?P<attack_range>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackRange = g.val("attack_range")
		},
	},
	{
		key:     "attack speed",
		pattern: regexp.MustCompile(`(?i)^Base AS (?P<attack_speed_base>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackSpeedBase = g.val("attack_speed_base")
		},
	},
	{
		key:     "windup",
		pattern: regexp.MustCompile(`(?i)^Attack windup (?P<attack_windup_percentage>[\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackWindupPercentage = g.val("attack_windup_percentage")
		},
	},
	{
		key:     "as ratio",
		pattern: regexp.MustCompile(`(?i)^AS ratio (?P<attack_speed_ratio>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackSpeedRatio = g.val("attack_speed_ratio")
		},
	},
	{
		key:     "bonus as",
		pattern: regexp.MustCompile(`(?i)^Bonus AS (?P<attack_speed_bonus_percentage>[\d.]+) %`),
		apply: func(s *ChampionStats, g groups) {
			s.AttackSpeedBonusPercentage = g.val("attack_speed_bonus_percentage")
		},
	},
	{
		key:     "missile speed",
		pattern: regexp.MustCompile(`(?i)^Missile speed (?P<missile_speed>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.MissileSpeed = g.val("missile_speed")
		},
	},
	{
		key:     "gameplay radius",
		pattern: regexp.MustCompile(`(?i)^Gameplay radius (?P<gameplay_radius>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.GameplayRadius = g.val("gameplay_radius")
		},
	},
	{
		key:     "selection radius",
		pattern: regexp.MustCompile(`(?i)^Selection radius (?P<selection_radius>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.SelectionRadius = g.val("selection_radius")
		},
	},
	{
		// The wiki suffixes this label with qualifiers on some pages.
		key:     "pathing radius",
		kind:    matchPrefix,
		pattern: regexp.MustCompile(`(?i)^Pathing radius (?P<pathing_radius>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.PathingRadius = g.val("pathing_radius")
		},
	},
	{
		key:     "acquisition radius",
		pattern: regexp.MustCompile(`(?i)^Acq. radius (?P<acquisition_radius>[\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.AcquisitionRadius = g.val("acquisition_radius")
		},
	},
	{
		key:     "aram-dmg-dealt",
		pattern: regexp.MustCompile(`(?i)^Damage Dealt (?P<aram_damage_dealt_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramDamageDealtBonusPercentage = g.val("aram_damage_dealt_bonus_percentage")
		},
	},
	{
		key:     "aram-dmg-taken",
		pattern: regexp.MustCompile(`(?i)^Damage Received (?P<aram_damage_taken_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramDamageTakenBonusPercentage = g.val("aram_damage_taken_bonus_percentage")
		},
	},
	{
		key:     "aram_attack_speed",
		pattern: regexp.MustCompile(`(?i)^Total Attack Speed (?P<aram_attack_speed_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramAttackSpeedBonusPercentage = g.val("aram_attack_speed_bonus_percentage")
		},
	},
	{
		key:     "aram_ability_haste",
		pattern: regexp.MustCompile(`(?i)^Ability Haste (?P<aram_ability_haste_bonus>[+-][\d.]+)`),
		apply: func(s *ChampionStats, g groups) {
			s.AramAbilityHasteBonus = g.val("aram_ability_haste_bonus")
		},
	},
	{
		key:     "aram_energy_regen",
		pattern: regexp.MustCompile(`(?i)^Energy Regen (?P<aram_energy_regen_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramEnergyRegenBonusPercentage = g.val("aram_energy_regen_bonus_percentage")
		},
	},
	{
		key:     "aram-healing",
		pattern: regexp.MustCompile(`(?i)^Healing (?P<aram_healing_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramHealingBonusPercentage = g.val("aram_healing_bonus_percentage")
		},
	},
	{
		key:     "aram-shielding",
		pattern: regexp.MustCompile(`(?i)^Shielding (?P<aram_shielding_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramShieldingBonusPercentage = g.val("aram_shielding_bonus_percentage")
		},
	},
	{
		key:     "aram_tenacity",
		pattern: regexp.MustCompile(`(?i)^Tenacity & Slow Resist (?P<aram_tenacity_bonus_percentage>[+-][\d.]+)%`),
		apply: func(s *ChampionStats, g groups) {
			s.AramTenacityBonusPercentage = g.val("aram_tenacity_bonus_percentage")
		},
	},
}

// Engine applies the rule table to harvested observations.
type Engine struct {
	exact  map[string]*rule
	prefix []*rule
	logger *zap.Logger
}

// NewEngine indexes the rule table. A nil logger disables warnings.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		exact:  make(map[string]*rule, len(ruleTable)),
		logger: logger,
	}
	for i := range ruleTable {
		r := &ruleTable[i]
		switch r.kind {
		case matchPrefix:
			e.prefix = append(e.prefix, r)
		default:
			e.exact[r.key] = r
		}
	}
	return e
}

// Extract builds a ChampionStats for the named champion from the observation
// sequence. Observations with empty text are skipped; text that fails its
// field's pattern leaves the field unset; labels with no rule produce a
// warning unless covered by the ignore list. A field key is applied at most
// once per call.
func (e *Engine) Extract(name string, observations []Observation) *ChampionStats {
	record := &ChampionStats{Name: name}
	applied := make(map[string]bool, len(observations))

	for _, obs := range observations {
		if obs.Text == "" {
			continue
		}
		r := e.lookup(obs.Field)
		if r == nil {
			if !ignoredField(obs.Field) {
				unknownFields.Inc()
				e.logger.Warn("unknown stat field",
					zap.String("champion", name),
					zap.String("field", obs.Field),
					zap.String("text", obs.Text),
				)
			}
			continue
		}
		if applied[r.key] {
			continue
		}
		m := r.pattern.FindStringSubmatch(obs.Text)
		if m == nil {
			// Markup varies across pages; an unparsable value is not an error.
			continue
		}
		applied[r.key] = true
		r.apply(record, captureGroups(r.pattern, m))
	}
	return record
}

func (e *Engine) lookup(field string) *rule {
	if r, ok := e.exact[field]; ok {
		return r
	}
	for _, r := range e.prefix {
		if strings.HasPrefix(field, r.key) {
			return r
		}
	}
	return nil
}

func ignoredField(field string) bool {
	for _, prefix := range ignoredFieldPrefixes {
		if strings.HasPrefix(field, prefix) {
			return true
		}
	}
	return false
}

func captureGroups(re *regexp.Regexp, match []string) groups {
	g := make(groups)
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		g[name] = match[i]
	}
	return g
}
