package domain

import (
	"fmt"
	"math"
)

// QuestionType identifies how a question is answered and scored.
type QuestionType string

const (
	QuestionBoolean          QuestionType = "boolean"
	QuestionMultipleChoice   QuestionType = "multiple_choice"
	QuestionScale            QuestionType = "scale"
	QuestionIntegrationCheck QuestionType = "integration_check"
)

// CompareOp compares a live metric value against a question threshold.
type CompareOp string

const (
	OpGreaterThan  CompareOp = "gt"
	OpLessThan     CompareOp = "lt"
	OpEqual        CompareOp = "eq"
	OpGreaterEqual CompareOp = "gte"
	OpLessEqual    CompareOp = "lte"
)

var validOps = []CompareOp{OpGreaterThan, OpLessThan, OpEqual, OpGreaterEqual, OpLessEqual}

// RubricCatalog is the immutable assessment definition: the domain tree plus
// the maturity level table. It is constructed once at startup and never
// mutated afterwards.
type RubricCatalog struct {
	Domains []MaturityDomain          `yaml:"domains" json:"domains"`
	Levels  []MaturityLevelDefinition `yaml:"levels"  json:"levels"`
}

// MaturityDomain is a top-level business area under assessment.
type MaturityDomain struct {
	ID            string                 `yaml:"id"     json:"id"`
	Name          string                 `yaml:"name"   json:"name"`
	Weight        float64                `yaml:"weight" json:"weight"`
	SubDimensions []MaturitySubDimension `yaml:"sub_dimensions" json:"sub_dimensions"`
	BestPractices []BestPracticeMetric   `yaml:"best_practices,omitempty" json:"best_practices,omitempty"`
}

// MaturitySubDimension groups related questions inside a domain.
type MaturitySubDimension struct {
	ID        string             `yaml:"id"     json:"id"`
	Name      string             `yaml:"name"   json:"name"`
	Weight    float64            `yaml:"weight" json:"weight"`
	Questions []MaturityQuestion `yaml:"questions" json:"questions"`
}

// MaturityQuestion is the smallest scored unit. Exactly one of the
// type-specific parameter blocks is set, matching Type.
type MaturityQuestion struct {
	ID          string            `yaml:"id"     json:"id"`
	Text        string            `yaml:"text"   json:"text"`
	Type        QuestionType      `yaml:"type"   json:"type"`
	Weight      float64           `yaml:"weight" json:"weight"`
	Options     []string          `yaml:"options,omitempty"     json:"options,omitempty"`
	Scale       *ScaleRange       `yaml:"scale,omitempty"       json:"scale,omitempty"`
	Integration *IntegrationCheck `yaml:"integration,omitempty" json:"integration,omitempty"`
}

// ScaleRange bounds a scale question's raw values.
type ScaleRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// IntegrationCheck describes how to score a question from a live metric.
type IntegrationCheck struct {
	Source    string    `yaml:"source"    json:"source"`
	Metric    string    `yaml:"metric"    json:"metric"`
	Threshold float64   `yaml:"threshold" json:"threshold"`
	Operator  CompareOp `yaml:"operator"  json:"operator"`
}

// BestPracticeMetric names an operational metric worth tracking for a domain.
type BestPracticeMetric struct {
	ID     string `yaml:"id"     json:"id"`
	Name   string `yaml:"name"   json:"name"`
	Target string `yaml:"target" json:"target"`
}

// MaturityLevelDefinition describes one discrete maturity level.
type MaturityLevelDefinition struct {
	Level       int     `yaml:"level"       json:"level"`
	Name        string  `yaml:"name"        json:"name"`
	Description string  `yaml:"description" json:"description"`
	MinScore    float64 `yaml:"min_score"   json:"min_score"`
	MaxScore    float64 `yaml:"max_score"   json:"max_score"`
}

// Domain returns the domain with the given id.
func (c *RubricCatalog) Domain(id string) (MaturityDomain, bool) {
	for _, d := range c.Domains {
		if d.ID == id {
			return d, true
		}
	}
	return MaturityDomain{}, false
}

// Question returns the question with the given id, searching the whole tree.
func (c *RubricCatalog) Question(id string) (MaturityQuestion, bool) {
	for _, d := range c.Domains {
		for _, sd := range d.SubDimensions {
			for _, q := range sd.Questions {
				if q.ID == id {
					return q, true
				}
			}
		}
	}
	return MaturityQuestion{}, false
}

// Validate checks the catalog for structural errors. Any error returned wraps
// ErrInvalidCatalog and is fatal at startup.
func (c *RubricCatalog) Validate() error {
	if len(c.Domains) == 0 {
		return configErr("catalog has no domains")
	}
	if len(c.Levels) == 0 {
		return configErr("catalog has no level definitions")
	}

	seen := map[string]bool{}
	for _, d := range c.Domains {
		if d.ID == "" {
			return configErr("domain with empty id")
		}
		if err := validWeight(d.Weight); err != nil {
			return configErr("domain %q: %v", d.ID, err)
		}
		if len(d.SubDimensions) == 0 {
			return configErr("domain %q has no sub-dimensions", d.ID)
		}
		for _, sd := range d.SubDimensions {
			if sd.ID == "" {
				return configErr("domain %q: sub-dimension with empty id", d.ID)
			}
			if err := validWeight(sd.Weight); err != nil {
				return configErr("sub-dimension %q: %v", sd.ID, err)
			}
			if len(sd.Questions) == 0 {
				return configErr("sub-dimension %q has no questions", sd.ID)
			}
			for _, q := range sd.Questions {
				if err := q.validate(); err != nil {
					return configErr("question %q: %v", q.ID, err)
				}
				if seen[q.ID] {
					return configErr("duplicate question id %q", q.ID)
				}
				seen[q.ID] = true
			}
		}
	}

	for _, l := range c.Levels {
		if l.Level < 0 || l.Level > 5 {
			return configErr("level %d out of range 0-5", l.Level)
		}
	}

	return nil
}

func (q MaturityQuestion) validate() error {
	if q.ID == "" {
		return fmt.Errorf("empty id")
	}
	if err := validWeight(q.Weight); err != nil {
		return err
	}

	switch q.Type {
	case QuestionBoolean:
		return nil
	case QuestionMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple_choice needs at least 2 options, got %d", len(q.Options))
		}
	case QuestionScale:
		if q.Scale == nil {
			return fmt.Errorf("scale question missing range")
		}
		if q.Scale.Min >= q.Scale.Max {
			return fmt.Errorf("scale range min %.2f must be below max %.2f", q.Scale.Min, q.Scale.Max)
		}
	case QuestionIntegrationCheck:
		if q.Integration == nil {
			return fmt.Errorf("integration_check question missing integration spec")
		}
		if q.Integration.Source == "" || q.Integration.Metric == "" {
			return fmt.Errorf("integration_check needs source and metric")
		}
		valid := false
		for _, op := range validOps {
			if q.Integration.Operator == op {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown operator %q (valid: gt, lt, eq, gte, lte)", q.Integration.Operator)
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

func validWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("weight is not a finite number")
	}
	if w < 0 {
		return fmt.Errorf("negative weight %.2f", w)
	}
	return nil
}
