package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeJSDoc(t *testing.T) {
	source := []byte(`import React from "react";

/**
 * Login screen for staff accounts.
 *
 * @screen LoginScreen
 * @route /login
 * @uses LoginForm
 * @uses PasswordResetLink
 */
export function LoginScreen() {}

/** plain comment without tags */
const helper = 1;

/**
 * @action submitLogin
 * @table sessions
 */
async function submitLogin() {}
`)

	blocks := ScrapeJSDoc("src/screens/login.tsx", source)
	require.Len(t, blocks, 2, "untagged blocks must be skipped")

	login := blocks[0]
	assert.Equal(t, "src/screens/login.tsx", login.File)
	assert.Equal(t, 3, login.Line)
	assert.Equal(t, "Login screen for staff accounts.", login.Description)

	screen, ok := login.First("screen")
	assert.True(t, ok)
	assert.Equal(t, "LoginScreen", screen)

	route, _ := login.First("route")
	assert.Equal(t, "/login", route)
	assert.Equal(t, []string{"LoginForm", "PasswordResetLink"}, login.All("uses"))

	action := blocks[1]
	assert.Equal(t, 16, action.Line)
	table, _ := action.First("table")
	assert.Equal(t, "sessions", table)
}

func TestScrapeJSDoc_MultilineTagValue(t *testing.T) {
	source := []byte(`/**
 * @testcase TC-101 user can log in
 *   with a valid password
 *
 * @testcase TC-102 login is rejected
 */`)

	blocks := ScrapeJSDoc("tests/login.test.ts", source)
	require.Len(t, blocks, 1)

	cases := blocks[0].All("testcase")
	require.Len(t, cases, 2)
	assert.Equal(t, "TC-101 user can log in with a valid password", cases[0])
	assert.Equal(t, "TC-102 login is rejected", cases[1])
}

func TestScrapeJSDoc_NoBlocks(t *testing.T) {
	blocks := ScrapeJSDoc("src/empty.ts", []byte("const x = 1; // not a doc comment"))
	assert.Empty(t, blocks)
}

func TestScrapeJSDoc_TagWithoutValue(t *testing.T) {
	blocks := ScrapeJSDoc("src/x.ts", []byte("/**\n * @deprecated\n */"))
	require.Len(t, blocks, 1)
	v, ok := blocks[0].First("deprecated")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}
