package core

// Choices offered by the generation form.
var (
	Industries = []string{
		"Technology", "Healthcare", "Finance", "E-commerce", "Education",
		"SaaS", "Manufacturing", "Retail", "Other",
	}

	ProductTypes = []string{"B2B", "B2C", "Internal Tool"}

	DetailLevels = []string{"Lean", "Standard", "Comprehensive"}

	EmphasisOptions = []string{
		"KPIs & Metrics", "Risk Analysis", "Technical Scope", "User Stories",
		"Requirements", "Timeline", "Market Analysis",
	}
)

// Default agent and knowledge base identifiers of the hosted deployment.
const (
	DefaultIngestionAgentID  = "699411cf23d48807fdee5100"
	DefaultGenerationAgentID = "699411f09e6ec929d6775951"
	DefaultKnowledgeBaseID   = "699411ac7049059138dd0e1f"
)
