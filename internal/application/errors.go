package application

import (
	"errors"
	"fmt"

	"github.com/komunitech/komunitech/internal/repository"
)

// Error kinds returned by the services. Handlers map them to HTTP statuses
// with errors.Is; specific errors below wrap one of these.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidReference = errors.New("invalid reference")
	ErrDepthExceeded    = errors.New("maximum comment depth exceeded")
	ErrAlreadySupported = errors.New("requirement already supported")
	ErrSelfSupport      = errors.New("cannot support your own requirement")
	ErrUnsupportedType  = errors.New("unsupported notification type")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

var (
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound     = fmt.Errorf("%w: category", ErrNotFound)
	ErrProjectNotFound      = fmt.Errorf("%w: project", ErrNotFound)
	ErrRequirementNotFound  = fmt.Errorf("%w: requirement", ErrNotFound)
	ErrCommentNotFound      = fmt.Errorf("%w: comment", ErrNotFound)
	ErrSupportNotFound      = fmt.Errorf("%w: support", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification", ErrNotFound)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = fmt.Errorf("%w: account is inactive", ErrForbidden)
	ErrWrongPassword      = fmt.Errorf("%w: current password is incorrect", ErrForbidden)
	ErrUsernameTaken      = fmt.Errorf("%w: username or email already registered", ErrConflict)
	ErrCategoryExists     = fmt.Errorf("%w: category name already exists", ErrConflict)
	ErrCategoryInUse      = fmt.Errorf("%w: category is still in use", ErrForbidden)
	ErrCollaboratorExists = fmt.Errorf("%w: user is already a collaborator", ErrConflict)
	ErrProjectNotActive   = fmt.Errorf("%w: project is not accepting requirements", ErrForbidden)
	ErrEditWindowClosed   = fmt.Errorf("%w: comment can no longer be edited", ErrForbidden)
)

// notFound maps a missing row to kind and passes other storage errors through.
func notFound(err, kind error) error {
	if repository.IsNotFound(err) {
		return kind
	}
	return err
}
