// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestTokenIDCtxKey(t *testing.T) {
	if TokenIDCtxKey.String() != "etapiTokenID" {
		t.Errorf("expected 'etapiTokenID', got '%s'", TokenIDCtxKey.String())
	}
}

func TestGetTokenIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenIDCtxKey, "tok1")

	tokenID, ok := GetTokenIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if tokenID != "tok1" {
		t.Errorf("expected tokenID=tok1, got %s", tokenID)
	}
}

func TestGetTokenIDFromContext_Missing(t *testing.T) {
	tokenID, ok := GetTokenIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if tokenID != "" {
		t.Errorf("expected empty tokenID, got %s", tokenID)
	}
}

func TestGetTokenIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenIDCtxKey, int64(5))

	if _, ok := GetTokenIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetTokenIDFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenIDCtxKey, "")

	if _, ok := GetTokenIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty token id, got true")
	}
}

func TestGetTokenIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "tok1")

	if _, ok := GetTokenIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
