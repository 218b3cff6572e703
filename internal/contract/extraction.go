// Package contract turns tender text into oracle requests and turns oracle
// output back into validated domain records.
package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
)

const DefaultMaxDocumentRunes = 100_000

const extractionInstruction = "Extract key tender information. Output MUST be in JSON format. Analyze with expert precision."

type ExtractionContract struct {
	catalog  *Catalog
	maxRunes int
}

func NewExtractionContract(catalog *Catalog, maxRunes int) *ExtractionContract {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxDocumentRunes
	}

	return &ExtractionContract{catalog: catalog, maxRunes: maxRunes}
}

func (c *ExtractionContract) MaxRunes() int {
	return c.maxRunes
}

func (c *ExtractionContract) BuildRequest(text string, jurisdiction domain.Jurisdiction) (ports.OracleRequest, error) {
	profile, err := c.catalog.Lookup(jurisdiction)
	if err != nil {
		return ports.OracleRequest{}, err
	}
	if strings.TrimSpace(text) == "" {
		return ports.OracleRequest{}, fmt.Errorf("document text is empty")
	}

	return ports.OracleRequest{
		SystemInstruction: extractionInstruction,
		Prompt:            fmt.Sprintf("Context: %s\n\nDocument Text:\n%s", profile.Framing, Truncate(text, c.maxRunes)),
		Schema:            AnalysisSchema(),
		SchemaName:        "tender_analysis",
	}, nil
}

func (c *ExtractionContract) Decode(resp ports.OracleResponse) (domain.TenderAnalysis, error) {
	return DecodeAnalysis([]byte(resp.Text))
}

// Truncate keeps the first max runes of text.
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}

	return text
}

func AnalysisSchema() *ports.Schema {
	stringList := func(description string) *ports.Schema {
		return &ports.Schema{Type: ports.SchemaArray, Description: description, Items: &ports.Schema{Type: ports.SchemaString}}
	}

	return &ports.Schema{
		Type: ports.SchemaObject,
		Properties: map[string]*ports.Schema{
			"title":           {Type: ports.SchemaString, Description: "Official tender title"},
			"technicalSpecs":  stringList("Key technical requirements"),
			"deadlines":       {Type: ports.SchemaString, Description: "Submission and execution deadlines"},
			"penalties":       {Type: ports.SchemaString, Description: "Penalty and liquidated damages clauses"},
			"certifications":  stringList("Certifications required from bidders"),
			"scoringCriteria": stringList("Award and scoring criteria"),
			"riskAlerts": {
				Type: ports.SchemaArray,
				Items: &ports.Schema{
					Type: ports.SchemaObject,
					Properties: map[string]*ports.Schema{
						"clause": {Type: ports.SchemaString},
						"risk":   {Type: ports.SchemaString},
						"level": {
							Type: ports.SchemaString,
							Enum: []string{string(domain.SeverityHigh), string(domain.SeverityMedium), string(domain.SeverityLow)},
						},
					},
					Required: []string{"clause", "risk", "level"},
				},
			},
		},
		Required: []string{"title", "technicalSpecs", "deadlines", "penalties", "certifications", "scoringCriteria", "riskAlerts"},
	}
}

// AnalysisDocument is the JSON shape of a TenderAnalysis, shared by the
// oracle contract and backup snapshots.
type AnalysisDocument struct {
	Title           string              `json:"title"`
	TechnicalSpecs  []string            `json:"technicalSpecs"`
	Deadlines       string              `json:"deadlines"`
	Penalties       string              `json:"penalties"`
	Certifications  []string            `json:"certifications"`
	ScoringCriteria []string            `json:"scoringCriteria"`
	RiskAlerts      []RiskAlertDocument `json:"riskAlerts"`
}

type RiskAlertDocument struct {
	Clause string `json:"clause"`
	Risk   string `json:"risk"`
	Level  string `json:"level"`
}

func NewAnalysisDocument(a domain.TenderAnalysis) AnalysisDocument {
	doc := AnalysisDocument{
		Title:           a.Title,
		TechnicalSpecs:  nonNil(a.TechnicalSpecs),
		Deadlines:       a.Deadlines,
		Penalties:       a.Penalties,
		Certifications:  nonNil(a.Certifications),
		ScoringCriteria: nonNil(a.ScoringCriteria),
		RiskAlerts:      make([]RiskAlertDocument, 0, len(a.RiskAlerts)),
	}
	for _, alert := range a.RiskAlerts {
		doc.RiskAlerts = append(doc.RiskAlerts, RiskAlertDocument{Clause: alert.Clause, Risk: alert.Risk, Level: string(alert.Level)})
	}

	return doc
}

type analysisPayload struct {
	Title           *string             `json:"title"`
	TechnicalSpecs  *[]string           `json:"technicalSpecs"`
	Deadlines       *string             `json:"deadlines"`
	Penalties       *string             `json:"penalties"`
	Certifications  *[]string           `json:"certifications"`
	ScoringCriteria *[]string           `json:"scoringCriteria"`
	RiskAlerts      *[]riskAlertPayload `json:"riskAlerts"`
}

type riskAlertPayload struct {
	Clause *string `json:"clause"`
	Risk   *string `json:"risk"`
	Level  *string `json:"level"`
}

// DecodeAnalysis parses one analysis object. Every field must be present
// and non-null; nothing is defaulted or repaired.
func DecodeAnalysis(data []byte) (domain.TenderAnalysis, error) {
	body, err := unwrapJSON(data)
	if err != nil {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}

	var payload analysisPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: decode: %v", domain.ErrMalformedExtraction, err)
	}

	missing := missingFields(map[string]bool{
		"title":           payload.Title != nil,
		"technicalSpecs":  payload.TechnicalSpecs != nil,
		"deadlines":       payload.Deadlines != nil,
		"penalties":       payload.Penalties != nil,
		"certifications":  payload.Certifications != nil,
		"scoringCriteria": payload.ScoringCriteria != nil,
		"riskAlerts":      payload.RiskAlerts != nil,
	})
	if len(missing) > 0 {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: missing %s", domain.ErrMalformedExtraction, strings.Join(missing, ", "))
	}

	analysis := domain.TenderAnalysis{
		Title:           *payload.Title,
		TechnicalSpecs:  *payload.TechnicalSpecs,
		Deadlines:       *payload.Deadlines,
		Penalties:       *payload.Penalties,
		Certifications:  *payload.Certifications,
		ScoringCriteria: *payload.ScoringCriteria,
		RiskAlerts:      make([]domain.RiskAlert, 0, len(*payload.RiskAlerts)),
	}

	for i, alert := range *payload.RiskAlerts {
		if alert.Clause == nil || alert.Risk == nil || alert.Level == nil {
			return domain.TenderAnalysis{}, fmt.Errorf("%w: risk alert %d is incomplete", domain.ErrMalformedExtraction, i)
		}
		level, err := domain.ParseSeverity(*alert.Level)
		if err != nil {
			return domain.TenderAnalysis{}, fmt.Errorf("%w: risk alert %d: %v", domain.ErrMalformedExtraction, i, err)
		}
		analysis.RiskAlerts = append(analysis.RiskAlerts, domain.RiskAlert{Clause: *alert.Clause, Risk: *alert.Risk, Level: level})
	}

	if err := analysis.Validate(); err != nil {
		return domain.TenderAnalysis{}, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}

	return analysis, nil
}

func missingFields(present map[string]bool) []string {
	var missing []string
	for _, name := range AnalysisSchema().Required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
