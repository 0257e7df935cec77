package domain

// DefaultLevels is the standard six-level maturity ladder. The top band is
// deliberately narrow so only near-perfect scores reach level 5.
func DefaultLevels() []MaturityLevelDefinition {
	return []MaturityLevelDefinition{
		{Level: 0, Name: "Ad Hoc", Description: "No repeatable process; outcomes depend on individuals", MinScore: 0, MaxScore: 1},
		{Level: 1, Name: "Initial", Description: "First processes exist but are undocumented and inconsistent", MinScore: 1, MaxScore: 2},
		{Level: 2, Name: "Developing", Description: "Core processes documented, adoption is partial", MinScore: 2, MaxScore: 3},
		{Level: 3, Name: "Functional", Description: "Processes are followed and produce predictable results", MinScore: 3, MaxScore: 4},
		{Level: 4, Name: "Advanced", Description: "Processes are measured and continuously improved", MinScore: 4, MaxScore: 4.5},
		{Level: 5, Name: "Optimized", Description: "Data-driven operation at or above industry best practice", MinScore: 4.5, MaxScore: 5},
	}
}

// DefaultCatalog returns the built-in rubric: four business domains with
// weighted sub-dimensions and questions. Callers treat the result as
// immutable.
func DefaultCatalog() *RubricCatalog {
	return &RubricCatalog{
		Levels: DefaultLevels(),
		Domains: []MaturityDomain{
			{
				ID:     "sales",
				Name:   "Sales",
				Weight: 0.3,
				SubDimensions: []MaturitySubDimension{
					{
						ID:     "pipelineManagement",
						Name:   "Pipeline Management",
						Weight: 0.6,
						Questions: []MaturityQuestion{
							{
								ID:     "sales_crm_in_use",
								Text:   "Do you track deals in a CRM rather than spreadsheets?",
								Type:   QuestionBoolean,
								Weight: 0.4,
							},
							{
								ID:      "sales_pipeline_review",
								Text:    "How often does the team review the pipeline?",
								Type:    QuestionMultipleChoice,
								Weight:  0.3,
								Options: []string{"never", "quarterly", "monthly", "weekly"},
							},
							{
								ID:     "sales_stale_deals",
								Text:   "Share of open deals untouched for 30+ days",
								Type:   QuestionIntegrationCheck,
								Weight: 0.3,
								Integration: &IntegrationCheck{
									Source:    "crm",
									Metric:    "stale_deal_percentage",
									Threshold: 20,
									Operator:  OpLessThan,
								},
							},
						},
					},
					{
						ID:     "forecasting",
						Name:   "Forecasting",
						Weight: 0.4,
						Questions: []MaturityQuestion{
							{
								ID:     "sales_forecast_exists",
								Text:   "Do you produce a rolling revenue forecast?",
								Type:   QuestionBoolean,
								Weight: 0.5,
							},
							{
								ID:     "sales_forecast_accuracy",
								Text:   "Rate your forecast accuracy over the last two quarters",
								Type:   QuestionScale,
								Weight: 0.5,
								Scale:  &ScaleRange{Min: 1, Max: 10},
							},
						},
					},
				},
				BestPractices: []BestPracticeMetric{
					{ID: "win_rate", Name: "Win rate", Target: ">= 25%"},
					{ID: "sales_cycle_days", Name: "Average sales cycle", Target: "<= 45 days"},
				},
			},
			{
				ID:     "marketing",
				Name:   "Marketing",
				Weight: 0.2,
				SubDimensions: []MaturitySubDimension{
					{
						ID:     "leadGeneration",
						Name:   "Lead Generation",
						Weight: 0.5,
						Questions: []MaturityQuestion{
							{
								ID:     "mkt_lead_tracking",
								Text:   "Are inbound leads captured automatically?",
								Type:   QuestionBoolean,
								Weight: 0.5,
							},
							{
								ID:      "mkt_channels",
								Text:    "How many acquisition channels do you run consistently?",
								Type:    QuestionMultipleChoice,
								Weight:  0.5,
								Options: []string{"none", "one", "two or three", "four or more"},
							},
						},
					},
					{
						ID:     "brandPresence",
						Name:   "Brand Presence",
						Weight: 0.5,
						Questions: []MaturityQuestion{
							{
								ID:     "mkt_content_cadence",
								Text:   "Rate the consistency of your content publishing",
								Type:   QuestionScale,
								Weight: 1,
								Scale:  &ScaleRange{Min: 0, Max: 10},
							},
						},
					},
				},
				BestPractices: []BestPracticeMetric{
					{ID: "cac_payback", Name: "CAC payback", Target: "<= 12 months"},
				},
			},
			{
				ID:     "finance",
				Name:   "Finance",
				Weight: 0.25,
				SubDimensions: []MaturitySubDimension{
					{
						ID:     "cashManagement",
						Name:   "Cash Management",
						Weight: 0.6,
						Questions: []MaturityQuestion{
							{
								ID:     "fin_cashflow_forecast",
								Text:   "Do you maintain a 13-week cash flow forecast?",
								Type:   QuestionBoolean,
								Weight: 0.6,
							},
							{
								ID:     "fin_overdue_invoices",
								Text:   "Share of invoices overdue by 30+ days",
								Type:   QuestionIntegrationCheck,
								Weight: 0.4,
								Integration: &IntegrationCheck{
									Source:    "accounting",
									Metric:    "overdue_invoice_percentage",
									Threshold: 10,
									Operator:  OpLessEqual,
								},
							},
						},
					},
					{
						ID:     "reporting",
						Name:   "Reporting",
						Weight: 0.4,
						Questions: []MaturityQuestion{
							{
								ID:      "fin_close_speed",
								Text:    "How quickly do you close the books each month?",
								Type:    QuestionMultipleChoice,
								Weight:  1,
								Options: []string{"we don't close monthly", "over two weeks", "one to two weeks", "under a week"},
							},
						},
					},
				},
				BestPractices: []BestPracticeMetric{
					{ID: "runway_months", Name: "Cash runway", Target: ">= 12 months"},
				},
			},
			{
				ID:     "operations",
				Name:   "Operations",
				Weight: 0.25,
				SubDimensions: []MaturitySubDimension{
					{
						ID:     "processDocumentation",
						Name:   "Process Documentation",
						Weight: 0.5,
						Questions: []MaturityQuestion{
							{
								ID:     "ops_sops_exist",
								Text:   "Are your core processes written down as SOPs?",
								Type:   QuestionBoolean,
								Weight: 0.5,
							},
							{
								ID:     "ops_sop_coverage",
								Text:   "Rate how much of daily work is covered by documented process",
								Type:   QuestionScale,
								Weight: 0.5,
								Scale:  &ScaleRange{Min: 0, Max: 10},
							},
						},
					},
					{
						ID:     "automation",
						Name:   "Automation",
						Weight: 0.5,
						Questions: []MaturityQuestion{
							{
								ID:      "ops_automation_level",
								Text:    "How much of your repetitive work is automated?",
								Type:    QuestionMultipleChoice,
								Weight:  1,
								Options: []string{"none", "a little", "about half", "most of it"},
							},
						},
					},
				},
				BestPractices: []BestPracticeMetric{
					{ID: "ticket_resolution_hours", Name: "Internal ticket resolution", Target: "<= 24 hours"},
				},
			},
		},
	}
}
