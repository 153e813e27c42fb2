package models

// TriggerEntity identifies the domain entity kind an event refers to.
// The set is closed: hosts must not invent entity tags.
type TriggerEntity string

const (
	EntityDocument      TriggerEntity = "document"
	EntityProject       TriggerEntity = "project"
	EntityChecklistItem TriggerEntity = "checklist_item"
	EntityCAPA          TriggerEntity = "capa"
	EntityPDCACycle     TriggerEntity = "pdca_cycle"
	EntityIncident      TriggerEntity = "incident"
	EntityRisk          TriggerEntity = "risk"
	EntityAudit         TriggerEntity = "audit"
	EntityTraining      TriggerEntity = "training"
	EntityTask          TriggerEntity = "task"
)

// TriggerEvent identifies what happened to the entity.
type TriggerEvent string

const (
	EventCreated       TriggerEvent = "created"
	EventUpdated       TriggerEvent = "updated"
	EventStatusChanged TriggerEvent = "status_changed"
	EventOverdue       TriggerEvent = "overdue"
	EventAssigned      TriggerEvent = "assigned"
	EventCompleted     TriggerEvent = "completed"
	EventApproved      TriggerEvent = "approved"
	EventRejected      TriggerEvent = "rejected"
	EventEscalated     TriggerEvent = "escalated"
	EventStageChanged  TriggerEvent = "stage_changed"
)

// Trigger declares which entity events a workflow listens to. FieldFilters
// are pre-filters with AND semantics, evaluated before the workflow's
// condition group.
type Trigger struct {
	Entity       TriggerEntity `json:"entity"                  validate:"required"`
	Event        TriggerEvent  `json:"event"                   validate:"required"`
	FieldFilters []Condition   `json:"field_filters,omitempty"`
}
