// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidAuthToken = errors.New("invalid etapi token")

	ErrWrongPassword       = errors.New("wrong password")
	ErrPasswordNotSet      = errors.New("protected session password is not set")
	ErrPasswordAlreadySet  = errors.New("protected session password is already set")
	ErrEmptyPassword       = errors.New("password is empty")
	ErrEmptyOptionName     = errors.New("option name is empty")
	ErrGraphReloadFailed   = errors.New("note graph reload failed")
	ErrHashKeyNotSpecified = errors.New("etapi token hash key is not specified")
)
