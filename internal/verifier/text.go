package verifier

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// Detail richness scoring tiers (word count component, 0-50)
	richnessWordsTier1 = 10 // below this: bare mention
	richnessWordsTier2 = 15
	richnessWordsTier3 = 30
	richnessWordsTier4 = 60
	richnessScoreTier1 = 5
	richnessScoreTier2 = 15
	richnessScoreTier3 = 30
	richnessScoreTier4 = 40
	richnessScoreMax   = 50

	// Concrete detail marker bonuses
	timeMarkerBonus     = 15
	locationMarkerBonus = 15
	physicalMarkerBonus = 20

	// Coherence scoring
	coherenceBaseline     = 70.0
	capsFractionTolerated = 0.3 // ordinary prose stays under this
	capsPenaltyScale      = 100.0
	repetitionMinTokens   = 8
	repetitionMaxFraction = 0.3
	repetitionPenalty     = 20.0

	// Sentiment scaling: each net hedge/assertive hit moves a quarter point
	sentimentStep = 0.25

	// Composite score weights
	textRichnessWeight  = 0.5
	textCoherenceWeight = 0.3
	textSentimentWeight = 0.2
)

// TextAnalysis is the lexical scoring result for a tip's free text.
type TextAnalysis struct {
	Score          float64 `json:"score"`           // 0-100
	DetailRichness float64 `json:"detail_richness"` // 0-100
	Coherence      float64 `json:"coherence"`       // 0-100
	Sentiment      float64 `json:"sentiment"`       // -1..1
}

// TextAnalyzer scores tip free-text for detail richness, coherence, and
// hedging-vs-certainty. Analysis is lexical only; there is no language
// understanding here.
type TextAnalyzer struct {
	logger Logger
}

// NewTextAnalyzer creates a new text analyzer
func NewTextAnalyzer(logger Logger) *TextAnalyzer {
	return &TextAnalyzer{logger: logger}
}

// clockPattern matches explicit clock times like "3pm", "10:45 am", "14:30".
var clockPattern = regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s*(am|pm)\b|\b\d{1,2}:\d{2}\b`)

// timeMarkers are words that anchor a sighting to a concrete time.
var timeMarkers = []string{
	"yesterday", "today", "tonight", "this morning", "this afternoon",
	"last night", "noon", "midnight", "o'clock", "oclock", "around",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// locationMarkers are street-level location words.
var locationMarkers = []string{
	"street", "avenue", "boulevard", "road", "highway", "corner",
	"intersection", "block", "park", "station", "mall", "bridge", "plaza",
	"parking lot", "bus stop", "gas station", "grocery", "downtown",
}

// physicalMarkers are appearance and clothing description words.
var physicalMarkers = []string{
	"wearing", "jacket", "hoodie", "sweater", "jeans", "shorts", "dress",
	"backpack", "hair", "blonde", "brunette", "tattoo", "beard", "glasses",
	"scar", "height", "tall", "short", "shirt", "shoes", "sneakers", "cap",
	"hat", "red", "blue", "green", "black", "white", "grey", "gray",
	"yellow", "purple", "orange", "brown", "pink",
}

// hedgingWords pull sentiment toward -1 (uncertainty).
var hedgingWords = []string{
	"maybe", "might", "possibly", "perhaps", "unsure", "think", "thought",
	"guess", "could", "probably", "seemed", "not sure", "unclear",
}

// assertiveWords pull sentiment toward +1 (certainty).
var assertiveWords = []string{
	"definitely", "certain", "certainly", "positive", "absolutely",
	"clearly", "recognized", "confirmed", "know", "saw",
}

// Analyze scores the given tip text. Empty text yields zeroed richness and
// a neutral coherence baseline rather than an error.
func (a *TextAnalyzer) Analyze(content string) *TextAnalysis {
	normalized := NormalizeText(content)
	tokens := strings.Fields(normalized)

	richness := a.scoreDetailRichness(normalized, tokens)
	coherence := a.scoreCoherence(content, tokens)
	sentiment := a.scoreSentiment(normalized)

	// Sentiment folds into the composite as a 0-100 band around neutral 50.
	sentimentBand := 50 + sentiment*50
	score := clampScore(richness*textRichnessWeight +
		coherence*textCoherenceWeight +
		sentimentBand*textSentimentWeight)

	a.logger.Debug("Text analysis complete",
		"word_count", len(tokens),
		"detail_richness", richness,
		"coherence", coherence,
		"sentiment", sentiment,
	)

	return &TextAnalysis{
		Score:          score,
		DetailRichness: richness,
		Coherence:      coherence,
		Sentiment:      sentiment,
	}
}

// scoreDetailRichness combines a tiered word-count score with bonuses for
// concrete detail markers (times, street-level places, appearance words).
func (a *TextAnalyzer) scoreDetailRichness(normalized string, tokens []string) float64 {
	wordCount := len(tokens)

	var lengthScore float64
	switch {
	case wordCount == 0:
		lengthScore = 0
	case wordCount < richnessWordsTier1:
		lengthScore = richnessScoreTier1
	case wordCount < richnessWordsTier2:
		lengthScore = richnessScoreTier2
	case wordCount < richnessWordsTier3:
		lengthScore = richnessScoreTier3
	case wordCount < richnessWordsTier4:
		lengthScore = richnessScoreTier4
	default:
		lengthScore = richnessScoreMax
	}

	richness := lengthScore
	if clockPattern.MatchString(normalized) || containsAny(normalized, timeMarkers) {
		richness += timeMarkerBonus
	}
	if containsAny(normalized, locationMarkers) {
		richness += locationMarkerBonus
	}
	if containsAny(normalized, physicalMarkers) {
		richness += physicalMarkerBonus
	}

	return clampScore(richness)
}

// scoreCoherence penalizes shouting (ALL-CAPS) proportionally to the
// capitalized fraction, and extreme single-token repetition. Operates on the
// raw text because normalization destroys case.
func (a *TextAnalyzer) scoreCoherence(content string, tokens []string) float64 {
	coherence := coherenceBaseline

	letters := 0
	uppers := 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters > 0 {
		capsFraction := float64(uppers) / float64(letters)
		if capsFraction > capsFractionTolerated {
			coherence -= (capsFraction - capsFractionTolerated) * capsPenaltyScale
		}
	}

	if len(tokens) >= repetitionMinTokens {
		counts := make(map[string]int, len(tokens))
		maxCount := 0
		for _, tok := range tokens {
			counts[tok]++
			if counts[tok] > maxCount {
				maxCount = counts[tok]
			}
		}
		if float64(maxCount)/float64(len(tokens)) > repetitionMaxFraction {
			coherence -= repetitionPenalty
		}
	}

	return clampScore(coherence)
}

// scoreSentiment nets assertive hits against hedging hits; always in [-1, 1].
func (a *TextAnalyzer) scoreSentiment(normalized string) float64 {
	net := 0
	for _, w := range assertiveWords {
		net += strings.Count(normalized, w)
	}
	for _, w := range hedgingWords {
		net -= strings.Count(normalized, w)
	}

	sentiment := float64(net) * sentimentStep
	if sentiment > 1 {
		return 1
	}
	if sentiment < -1 {
		return -1
	}
	return sentiment
}

// containsAny reports whether text contains any of the given phrases.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// clampScore bounds a score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
