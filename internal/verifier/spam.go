package verifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Each distinct built-in phrase family raises the spam score by this much.
	// Three families push the score past 60.
	spamFamilyScore = 25.0

	// A custom pattern match raises the score by threshold * this scale.
	patternScoreScale = 40.0

	// Tips with fewer tokens than this carry no substantive information.
	minSubstantiveTokens = 5
	shortContentFloor    = 10.0
)

// spamPhraseFamily groups phrasing variants of one scam trope. Matching any
// variant counts the family once.
type spamPhraseFamily struct {
	name    string
	phrases []string
}

// builtinSpamFamilies are universal advance-fee and prize-scam phrasings
// that appear in hoax tips regardless of the case.
var builtinSpamFamilies = []spamPhraseFamily{
	{
		name:    "wire_transfer",
		phrases: []string{"wire money", "wire transfer", "send money", "western union", "moneygram"},
	},
	{
		name:    "gift_card",
		phrases: []string{"gift card", "gift cards", "itunes card", "prepaid card"},
	},
	{
		name:    "cryptocurrency",
		phrases: []string{"bitcoin", "crypto", "ethereum", "btc wallet"},
	},
	{
		name:    "lottery",
		phrases: []string{"lottery", "you have won", "prize money", "claim your prize"},
	},
	{
		name:    "inheritance",
		phrases: []string{"inheritance", "unclaimed funds", "next of kin", "beneficiary"},
	},
}

// SpamCheck is the spam and hoax screening result for one tip.
type SpamCheck struct {
	SpamScore      float64  `json:"spam_score"` // 0-100
	HoaxIndicators []string `json:"hoax_indicators,omitempty"`
}

// SpamHoaxDetector screens tip text against built-in scam phrase families
// and the investigator-maintained scam-pattern catalog. The built-in
// families are compiled into an Aho-Corasick matcher once; the catalog is
// plain data passed per call so it stays swappable and testable.
type SpamHoaxDetector struct {
	logger  Logger
	matcher *ahocorasick.Matcher
	phrases []string          // all built-in phrases in matcher order
	family  map[string]string // phrase -> family name
}

// NewSpamHoaxDetector creates a new spam and hoax detector.
func NewSpamHoaxDetector(logger Logger) *SpamHoaxDetector {
	d := &SpamHoaxDetector{
		logger: logger,
		family: make(map[string]string),
	}
	for _, fam := range builtinSpamFamilies {
		for _, p := range fam.phrases {
			d.phrases = append(d.phrases, p)
			d.family[p] = fam.name
		}
	}
	d.matcher = ahocorasick.NewStringMatcher(d.phrases)
	return d
}

// Detect scores the tip text for spam and hoax signals. Indicators are a
// de-duplicated set; the score is clamped to [0, 100].
func (d *SpamHoaxDetector) Detect(tip *domain.TipVerificationInput, patterns []domain.ScamPattern) *SpamCheck {
	normalized := NormalizeText(tip.Content)
	score := 0.0
	var spamSignature, knownPattern bool

	// Single pass over the text for every built-in phrase.
	hits := d.matcher.Match([]byte(normalized))
	families := make(map[string]bool)
	for _, hitIndex := range hits {
		if hitIndex >= len(d.phrases) {
			continue
		}
		families[d.family[d.phrases[hitIndex]]] = true
	}
	if len(families) > 0 {
		score += spamFamilyScore * float64(len(families))
		spamSignature = true
	}

	for i := range patterns {
		pattern := &patterns[i]
		if !pattern.IsActive || pattern.PatternType != domain.PatternTypeText {
			continue
		}
		if d.matchesPattern(normalized, pattern) {
			score += pattern.ConfidenceThreshold * patternScoreScale
			knownPattern = true
			d.logger.Debug("Scam pattern matched",
				"tip_id", tip.TipID,
				"pattern_id", pattern.ID,
				"pattern_name", pattern.Name,
			)
		}
	}

	if len(Tokenize(tip.Content)) < minSubstantiveTokens && score < shortContentFloor {
		score = shortContentFloor
	}

	check := &SpamCheck{SpamScore: clampScore(score)}
	if spamSignature {
		check.HoaxIndicators = append(check.HoaxIndicators, domain.IndicatorSpamSignature)
	}
	if knownPattern {
		check.HoaxIndicators = append(check.HoaxIndicators, domain.IndicatorKnownScamPattern)
	}
	return check
}

// matchesPattern reports whether any of the pattern's keywords appear in the
// normalized text. Catalog keywords are normalized the same way as the text
// so accents and case never block a match.
func (d *SpamHoaxDetector) matchesPattern(normalized string, pattern *domain.ScamPattern) bool {
	for _, keyword := range pattern.PatternData.Keywords {
		if kw := NormalizeText(keyword); kw != "" && strings.Contains(normalized, strings.TrimSpace(kw)) {
			return true
		}
	}
	return false
}
