// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

func TestNewIncludesCodeAndFields(t *testing.T) {
	err := fgerr.New(
		fgerr.CodeGraphHandleNotFound,
		"handle does not resolve",
		fgerr.FieldHandle("alice"),
		fgerr.Field("candidates", 3),
	)

	require.Error(t, err)
	assert.Equal(t, fgerr.CodeGraphHandleNotFound, fgerr.CodeOf(err))
	assert.True(t, fgerr.HasCode(err, fgerr.CodeGraphHandleNotFound))

	fields := fgerr.FieldsOf(err)
	assert.Equal(t, "alice", fields["handle"])
	assert.Equal(t, 3, fields["candidates"])
}

func TestErrorfWrapsInnerError(t *testing.T) {
	inner := stderrors.New("disk full")
	err := fgerr.Errorf(fgerr.CodeStoreDatabaseFailure, "write failed: %w", inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, fgerr.CodeStoreDatabaseFailure, fgerr.CodeOf(err))
}

func TestWrapPreservesChain(t *testing.T) {
	inner := stderrors.New("account gone")
	err := fgerr.Wrap(inner, fgerr.CodeDirectoryAccountGone, "expansion failed",
		fgerr.FieldAccountID("42"))

	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "42", fgerr.FieldsOf(err)["account_id"])

	assert.NoError(t, fgerr.Wrap(nil, fgerr.CodeDirectoryAccountGone, "ignored"))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, fgerr.Code(""), fgerr.CodeOf(stderrors.New("plain")))
	assert.Equal(t, fgerr.Code(""), fgerr.CodeOf(nil))
}

func TestClassification(t *testing.T) {
	assert.True(t, fgerr.IsNotFound(fgerr.New(fgerr.CodeGraphHandleNotFound, "x")))
	assert.True(t, fgerr.IsNotFound(fgerr.New(fgerr.CodeDirectoryAccountGone, "x")))
	assert.False(t, fgerr.IsNotFound(fgerr.New(fgerr.CodeStoreDatabaseFailure, "x")))
	assert.True(t, fgerr.IsInvalidInput(fgerr.New(fgerr.CodeConfigValidateInvalidValue, "x")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, fgerr.HTTPStatus(fgerr.New(fgerr.CodeGraphHandleNotFound, "x")))
	assert.Equal(t, http.StatusBadRequest, fgerr.HTTPStatus(fgerr.New(fgerr.CodeCLIInputInvalid, "x")))
	assert.Equal(t, http.StatusInternalServerError, fgerr.HTTPStatus(stderrors.New("plain")))
}
