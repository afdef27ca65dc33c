package domain

import "errors"

// ErrEmptyIncidentID is returned when an operation requires an incident ID and none was given.
var ErrEmptyIncidentID = errors.New("incident id is empty")

// ErrInvalidEIDO is returned when an uploaded EIDO document is not valid JSON.
var ErrInvalidEIDO = errors.New("invalid EIDO document")

// ErrUnsupportedFileType is returned when an upload is not a .json file.
var ErrUnsupportedFileType = errors.New("unsupported file type")
