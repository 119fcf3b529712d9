package accounts

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// birthDateLayout is the wire format for birth dates
const birthDateLayout = "2006-01-02"

// registerMessageFromRequest is plain shape translation, no policy
func registerMessageFromRequest(r *RegisterRequest) (RegisterAccountMessage, error) {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return RegisterAccountMessage{}, err
	}

	return RegisterAccountMessage{
		Username:    r.Username,
		DisplayName: r.DisplayName,
		Password:    r.Password,
		BirthDate:   birthDate,
	}, nil
}

func updateMessageFromRequest(r *UpdateRequest) (UpdateAccountMessage, error) {
	birthDate, err := parseBirthDate(r.BirthDate)
	if err != nil {
		return UpdateAccountMessage{}, err
	}

	return UpdateAccountMessage{
		Username:  r.Username,
		BirthDate: birthDate,
	}, nil
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(birthDateLayout, *raw); err == nil {
		return &t, nil
	}

	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse birth date").
			WithCode(goerrors.CodeBadRequest)
	}

	return &t, nil
}
