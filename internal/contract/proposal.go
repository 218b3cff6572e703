package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
)

const archiveHeader = "### HISTORICAL BID ARCHIVE (RAG CONTEXT) ###"

const proposalInstruction = "Generate a professional technical proposal (Mémoire Technique) in markdown, " +
	"with a compliance checklist and an estimated win score between 0 and 100."

const archiveInstruction = " A historical bid archive is provided: use it as the reference for tone, technical phrasing " +
	"and strategic approach, and list the archive fragments you reused in ragInsights."

type ProposalContract struct {
	catalog *Catalog
}

func NewProposalContract(catalog *Catalog) *ProposalContract {
	return &ProposalContract{catalog: catalog}
}

type ProposalInput struct {
	Tender  domain.TenderRecord
	Profile domain.CompanyProfile
	// IncludeArchive is set only when the owner is entitled to the bid
	// archive; the profile's history is ignored otherwise.
	IncludeArchive bool
}

type profileDocument struct {
	Name           string   `json:"name"`
	Experience     string   `json:"experience"`
	Certifications []string `json:"certifications"`
	PastProjects   []string `json:"pastProjects"`
}

func (c *ProposalContract) BuildRequest(in ProposalInput) (ports.OracleRequest, error) {
	profile, err := c.catalog.Lookup(in.Tender.Jurisdiction)
	if err != nil {
		return ports.OracleRequest{}, err
	}

	analysisJSON, err := json.Marshal(NewAnalysisDocument(in.Tender.Analysis))
	if err != nil {
		return ports.OracleRequest{}, fmt.Errorf("encode tender analysis: %w", err)
	}
	profileJSON, err := json.Marshal(profileDocument{
		Name:           in.Profile.Name,
		Experience:     in.Profile.Experience,
		Certifications: nonNil(in.Profile.Certifications),
		PastProjects:   nonNil(in.Profile.PastProjects),
	})
	if err != nil {
		return ports.OracleRequest{}, fmt.Errorf("encode company profile: %w", err)
	}

	instruction := profile.Framing + " " + proposalInstruction

	var prompt strings.Builder
	if in.IncludeArchive && in.Profile.HasBidHistory() {
		instruction += archiveInstruction
		prompt.WriteString(archiveHeader)
		prompt.WriteString("\n")
		prompt.WriteString(in.Profile.BidHistory)
		prompt.WriteString("\n\n")
	}
	fmt.Fprintf(&prompt, "Tender Analysis: %s\nCompany Profile: %s", analysisJSON, profileJSON)

	return ports.OracleRequest{
		SystemInstruction: instruction,
		Prompt:            prompt.String(),
		Schema:            ProposalSchema(),
		SchemaName:        "technical_proposal",
	}, nil
}

func (c *ProposalContract) Decode(resp ports.OracleResponse) (domain.GeneratedProposal, error) {
	return DecodeProposal([]byte(resp.Text))
}

func ProposalSchema() *ports.Schema {
	return &ports.Schema{
		Type: ports.SchemaObject,
		Properties: map[string]*ports.Schema{
			"technicalMemory": {Type: ports.SchemaString, Description: "Markdown technical proposal"},
			"complianceChecklist": {
				Type:  ports.SchemaArray,
				Items: &ports.Schema{Type: ports.SchemaString},
			},
			"estimatedScore": {Type: ports.SchemaNumber, Description: "Estimated win score from 0 to 100"},
			"ragInsights": {
				Type:        ports.SchemaArray,
				Description: "Specific references to historical successes used in this bid",
				Items:       &ports.Schema{Type: ports.SchemaString},
			},
		},
		Required: []string{"technicalMemory", "complianceChecklist", "estimatedScore"},
	}
}

type proposalPayload struct {
	TechnicalMemory     *string   `json:"technicalMemory"`
	ComplianceChecklist *[]string `json:"complianceChecklist"`
	EstimatedScore      *float64  `json:"estimatedScore"`
	RAGInsights         []string  `json:"ragInsights"`
}

func DecodeProposal(data []byte) (domain.GeneratedProposal, error) {
	body, err := unwrapJSON(data)
	if err != nil {
		return domain.GeneratedProposal{}, fmt.Errorf("%w: %v", domain.ErrMalformedGeneration, err)
	}

	var payload proposalPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.GeneratedProposal{}, fmt.Errorf("%w: decode: %v", domain.ErrMalformedGeneration, err)
	}

	var missing []string
	if payload.TechnicalMemory == nil {
		missing = append(missing, "technicalMemory")
	}
	if payload.ComplianceChecklist == nil {
		missing = append(missing, "complianceChecklist")
	}
	if payload.EstimatedScore == nil {
		missing = append(missing, "estimatedScore")
	}
	if len(missing) > 0 {
		return domain.GeneratedProposal{}, fmt.Errorf("%w: missing %s", domain.ErrMalformedGeneration, strings.Join(missing, ", "))
	}

	proposal := domain.GeneratedProposal{
		TechnicalMemory:     *payload.TechnicalMemory,
		ComplianceChecklist: *payload.ComplianceChecklist,
		EstimatedScore:      *payload.EstimatedScore,
		RAGInsights:         payload.RAGInsights,
	}
	if err := proposal.Validate(); err != nil {
		return domain.GeneratedProposal{}, fmt.Errorf("%w: %v", domain.ErrMalformedGeneration, err)
	}

	return proposal, nil
}

// ProposalDocument is the JSON form printed by the CLI.
type ProposalDocument struct {
	TechnicalMemory     string   `json:"technicalMemory"`
	ComplianceChecklist []string `json:"complianceChecklist"`
	EstimatedScore      float64  `json:"estimatedScore"`
	RAGInsights         []string `json:"ragInsights,omitempty"`
}

func NewProposalDocument(p domain.GeneratedProposal) ProposalDocument {
	return ProposalDocument{
		TechnicalMemory:     p.TechnicalMemory,
		ComplianceChecklist: nonNil(p.ComplianceChecklist),
		EstimatedScore:      p.EstimatedScore,
		RAGInsights:         p.RAGInsights,
	}
}
