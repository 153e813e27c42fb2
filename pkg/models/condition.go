package models

// ConditionOperator is the predicate kind applied to a resolved field value.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorContains    ConditionOperator = "contains"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorIsEmpty     ConditionOperator = "is_empty"
	OperatorIsNotEmpty  ConditionOperator = "is_not_empty"
	OperatorInList      ConditionOperator = "in_list"
)

// Condition is a single field predicate. Field is a dot-path into the event
// payload ("status", "assignedTo.role").
type Condition struct {
	Field    string            `json:"field"    validate:"required"`
	Operator ConditionOperator `json:"operator" validate:"required"`
	Value    any               `json:"value"`
}

// ConditionLogic combines the conditions of a group.
type ConditionLogic string

const (
	LogicAnd ConditionLogic = "AND"
	LogicOr  ConditionLogic = "OR"
)

// ConditionGroup gates workflow execution beyond the trigger. A group with
// no conditions never blocks a match.
type ConditionGroup struct {
	Logic      ConditionLogic `json:"logic"      validate:"required,oneof=AND OR"`
	Conditions []Condition    `json:"conditions"`
}
