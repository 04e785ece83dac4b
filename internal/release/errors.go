package release

import (
	"errors"
	"fmt"
)

// Stage names a step of the release workflow.
type Stage string

const (
	StageSetup    Stage = "setup"
	StageValidate Stage = "validate"
	StageResolve  Stage = "resolve"
	StageCompute  Stage = "compute"
	StageApply    Stage = "apply"
	StageCommit   Stage = "commit"
	StageInstall  Stage = "install"
	StageEscalate Stage = "escalate"
	StagePublish  Stage = "publish"
)

// ErrPublishDeclined is returned when the user answers no to the publish
// prompt. The release commit and tag stay in the local repository.
var ErrPublishDeclined = errors.New("publish declined")

// StageError records the stage a release stopped at.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
