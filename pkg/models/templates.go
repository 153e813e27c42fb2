package models

// WorkflowTemplates is the built-in rule catalog. Templates are instantiated
// through the repository, which assigns fresh IDs and timestamps; they ship
// paused so a new instance never fires before someone reviews it.
func WorkflowTemplates() []WorkflowDefinition {
	return []WorkflowDefinition{
		{
			Name:        "Document Approval Chain",
			Description: "When a document goes Under Review, notify the project lead and route it through an approval chain.",
			Status:      WorkflowStatusPaused,
			Category:    CategoryDocument,
			IsTemplate:  true,
			Trigger: Trigger{
				Entity: EntityDocument,
				Event:  EventStatusChanged,
				FieldFilters: []Condition{
					{Field: "status", Operator: OperatorEquals, Value: "Under Review"},
				},
			},
			ConditionGroup: ConditionGroup{Logic: LogicAnd},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionSendNotification,
					Order: 1,
					Config: map[string]any{
						"recipient_roles": []any{"ProjectLead"},
						"priority":        "high",
						"title":           "Document Pending Approval",
						"message":         "A document requires your approval: {{entity.title}}",
					},
				},
				{
					ID:    "a2",
					Type:  ActionStartApprovalChain,
					Order: 2,
					Config: map[string]any{
						"steps": []any{
							map[string]any{"step": 1, "reviewer_role": "ProjectLead"},
							map[string]any{"step": 2, "reviewer_role": "Admin", "auto_approve_after_days": 7},
						},
					},
				},
			},
		},
		{
			Name:        "Non-Compliant Escalation",
			Description: "When a checklist item is marked Non-Compliant, create a corrective task and notify quality leadership.",
			Status:      WorkflowStatusPaused,
			Category:    CategoryCompliance,
			IsTemplate:  true,
			Trigger: Trigger{
				Entity: EntityChecklistItem,
				Event:  EventStatusChanged,
				FieldFilters: []Condition{
					{Field: "status", Operator: OperatorEquals, Value: "Non-Compliant"},
				},
			},
			ConditionGroup: ConditionGroup{Logic: LogicAnd},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionSendNotification,
					Order: 1,
					Config: map[string]any{
						"recipient_roles": []any{"Admin", "ProjectLead"},
						"priority":        "critical",
						"title":           "Non-Compliance Detected",
						"message":         "A checklist item has been marked Non-Compliant: {{entity.item}}",
					},
				},
				{
					ID:    "a2",
					Type:  ActionCreateTask,
					Order: 2,
					Config: map[string]any{
						"title":                 "Investigate: {{entity.item}}",
						"description":           "Non-compliant item requires corrective action.",
						"assign_to_roles":       []any{"ProjectLead"},
						"due_days_from_trigger": 7,
						"priority":              "high",
					},
				},
			},
		},
		{
			Name:        "Overdue Task Reminder",
			Description: "When a task becomes overdue, remind the assignee and escalate to the project lead.",
			Status:      WorkflowStatusPaused,
			Category:    CategoryQuality,
			IsTemplate:  true,
			Trigger:     Trigger{Entity: EntityTask, Event: EventOverdue},
			ConditionGroup: ConditionGroup{
				Logic: LogicAnd,
				Conditions: []Condition{
					{Field: "status", Operator: OperatorNotEquals, Value: "Completed"},
				},
			},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionSendNotification,
					Order: 1,
					Config: map[string]any{
						"priority": "high",
						"title":    "Overdue Task",
						"message":  "Your task \"{{entity.title}}\" is overdue. Please complete it as soon as possible.",
					},
				},
				{
					ID:           "a2",
					Type:         ActionEscalate,
					Order:        2,
					DelayMinutes: 1440,
					Config: map[string]any{
						"escalate_to_roles": []any{"ProjectLead"},
						"message":           "Task \"{{entity.title}}\" is overdue and requires attention.",
					},
				},
			},
		},
		{
			Name:        "CAPA Auto-Create on Sentinel Event",
			Description: "Automatically open a CAPA when a Sentinel Event incident is reported.",
			Status:      WorkflowStatusPaused,
			Category:    CategorySafety,
			IsTemplate:  true,
			Trigger: Trigger{
				Entity: EntityIncident,
				Event:  EventCreated,
				FieldFilters: []Condition{
					{Field: "severity", Operator: OperatorEquals, Value: "Sentinel Event"},
				},
			},
			ConditionGroup: ConditionGroup{Logic: LogicAnd},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionCreateCAPA,
					Order: 1,
					Config: map[string]any{
						"title":           "CAPA: {{entity.description}}",
						"assign_to_roles": []any{"Admin"},
						"priority":        "critical",
					},
				},
				{
					ID:    "a2",
					Type:  ActionSendNotification,
					Order: 2,
					Config: map[string]any{
						"recipient_roles": []any{"Admin"},
						"priority":        "critical",
						"title":           "Sentinel Event: CAPA Created",
						"message":         "A sentinel event has triggered automatic CAPA creation.",
					},
				},
			},
		},
		{
			Name:        "Training Overdue Alert",
			Description: "Notify when a training assignment is not completed by its due date.",
			Status:      WorkflowStatusPaused,
			Category:    CategoryTraining,
			IsTemplate:  true,
			Trigger:     Trigger{Entity: EntityTraining, Event: EventOverdue},
			ConditionGroup: ConditionGroup{
				Logic: LogicAnd,
				Conditions: []Condition{
					{Field: "status", Operator: OperatorNotEquals, Value: "Completed"},
				},
			},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionSendNotification,
					Order: 1,
					Config: map[string]any{
						"priority": "high",
						"title":    "Training Overdue",
						"message":  "Training \"{{entity.title}}\" is past its due date. Please complete it promptly.",
					},
				},
			},
		},
		{
			Name:        "PDCA Stage Gate Notification",
			Description: "When a PDCA cycle moves to a new stage, notify stakeholders.",
			Status:      WorkflowStatusPaused,
			Category:    CategoryQuality,
			IsTemplate:  true,
			Trigger:     Trigger{Entity: EntityPDCACycle, Event: EventStageChanged},
			ConditionGroup: ConditionGroup{
				Logic: LogicAnd,
			},
			Actions: []Action{
				{
					ID:    "a1",
					Type:  ActionSendNotification,
					Order: 1,
					Config: map[string]any{
						"recipient_roles": []any{"ProjectLead", "Admin"},
						"priority":        "normal",
						"title":           "PDCA Stage Transition",
						"message":         "PDCA cycle \"{{entity.title}}\" has moved to stage: {{entity.currentStage}}",
					},
				},
			},
		},
	}
}
