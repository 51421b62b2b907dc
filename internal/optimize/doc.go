// Package optimize implements the budget optimization pipeline: spending
// aggregation, request validation, prompt rendering, the language-model call
// and validation of the model's answer.
//
// The pipeline holds no state between calls and never logs; every failure is
// returned to the caller as an *Error carrying one of the Kind values.
package optimize
