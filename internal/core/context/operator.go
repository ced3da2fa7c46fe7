// Package context provides request-scoped values shared across layers.
package context

import "context"

// OperatorContext identifies the console operator driving the session.
// Authentication itself is handled upstream of this service; the identity
// arrives as trusted headers and is carried here for audit fields such as
// the resolver of an invoice gap.
type OperatorContext struct {
	ID   string
	Name string
}

type operatorContextKey struct{}

// WithOperator adds OperatorContext to context.
func WithOperator(ctx context.Context, op *OperatorContext) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, op)
}

// GetOperator returns OperatorContext from context or nil.
func GetOperator(ctx context.Context) *OperatorContext {
	if v, ok := ctx.Value(operatorContextKey{}).(*OperatorContext); ok {
		return v
	}
	return nil
}

// GetOperatorID returns the operator ID from context or empty string.
func GetOperatorID(ctx context.Context) string {
	if op := GetOperator(ctx); op != nil {
		return op.ID
	}
	return ""
}
