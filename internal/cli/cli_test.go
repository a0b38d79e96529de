package cli

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/crypto/hdkey"
	"github.com/Davincible/gfmat/pkg/crypto/linmap"
	"github.com/Davincible/gfmat/pkg/crypto/mnemonic"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// setupConfig points the CLI at a fresh config file.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GFMAT_CONFIG", filepath.Join(dir, "config.json"))
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func runJSON(t *testing.T, result any, stdin string, args ...string) {
	t.Helper()
	out, err := run(t, stdin, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), result), out)
}

func decodeRows(t *testing.T, rows []string) []byte {
	t.Helper()
	var out []byte
	for _, row := range rows {
		b, err := hex.DecodeString(row)
		require.NoError(t, err)
		out = append(out, b...)
	}
	return out
}

func TestGaussCommand(t *testing.T) {
	setupConfig(t)

	for _, backend := range []string{"reference", "wide"} {
		t.Run(backend, func(t *testing.T) {
			var res GaussResult
			runJSON(t, &res, "", "gauss", "-b", backend, "--rows", "2", "--cols", "3", "--matrix", "030105 010102")

			assert.True(t, res.FullRank)
			assert.Equal(t, backend, res.Backend)
			reduced := decodeRows(t, res.Reduced)

			sol := make([]byte, 2)
			require.True(t, blas.SolveLinearEq(sol, []byte{3, 1, 1, 1}, []byte{5, 2}, 2))
			assert.Equal(t, []byte{1, 0, sol[0], 0, 1, sol[1]}, reduced)
		})
	}
}

func TestGaussCommandPromptsForMatrix(t *testing.T) {
	setupConfig(t)

	var res GaussResult
	runJSON(t, &res, "0101 0101\n", "gauss", "--rows", "2")
	assert.False(t, res.FullRank)
}

func TestInvertCommand(t *testing.T) {
	setupConfig(t)

	var res InvertResult
	runJSON(t, &res, "", "invert", "--dim", "2", "--matrix", "0301,0101")
	require.True(t, res.FullRank)

	inv := decodeRows(t, res.Inverse)
	a := []byte{3, 1, 1, 1}
	prod := make([]byte, 4)
	blas.MatMul(prod, inv, a, 2)
	assert.Equal(t, []byte{1, 0, 0, 1}, prod)

	runJSON(t, &res, "", "invert", "--dim", "2", "--matrix", "0202 0101")
	assert.False(t, res.FullRank)

	_, err := run(t, "", "invert", "--dim", "64", "--matrix", "00")
	assert.Error(t, err)
}

func TestSolveCommand(t *testing.T) {
	setupConfig(t)

	var res SolveResult
	runJSON(t, &res, "", "solve", "--dim", "2", "--matrix", "0301 0101", "--rhs", "0502")
	require.True(t, res.FullRank)

	x, err := hex.DecodeString(res.Solution)
	require.NoError(t, err)
	want := make([]byte, 2)
	blas.SolveLinearEq(want, []byte{3, 1, 1, 1}, []byte{5, 2}, 2)
	assert.Equal(t, want, x)

	_, err = run(t, "", "solve", "--dim", "2", "--matrix", "0301 0101", "--rhs", "05")
	assert.Error(t, err)
}

func TestMulCommand(t *testing.T) {
	setupConfig(t)

	var res MulResult
	runJSON(t, &res, "", "mul", "--dim", "2", "--a", "0102 0304", "--b", "0100 0001")
	assert.Equal(t, []string{"0102", "0304"}, res.Product)

	// [[1,1],[0,1]]·[[1,0],[1,1]] = [[0,1],[1,1]] in characteristic 2.
	runJSON(t, &res, "", "mul", "-b", "wide", "--dim", "2", "--a", "0101 0001", "--b", "0100 0101")
	assert.Equal(t, []string{"0001", "0101"}, res.Product)
}

func TestPolyMulCommand(t *testing.T) {
	setupConfig(t)

	var res PolyMulResult
	runJSON(t, &res, "", "polymul", "--a", "0101", "--b", "0101")
	assert.Equal(t, "010001", res.Product)
	assert.Equal(t, 2, res.Degree)

	_, err := run(t, "", "polymul", "--a", "0101", "--b", "01")
	assert.Error(t, err)
}

func TestUnknownBackend(t *testing.T) {
	setupConfig(t)

	_, err := run(t, "", "polymul", "-b", "quantum", "--a", "01", "--b", "01")
	assert.ErrorContains(t, err, "quantum")
}

func TestSplitRecoverCommands(t *testing.T) {
	setupConfig(t)

	var split SplitResult
	runJSON(t, &split, "", "split", "--parts", "5", "--threshold", "3", "--secret", "deadbeef00")
	require.Len(t, split.Shares, 5)

	for _, backend := range []string{"reference", "wide"} {
		var rec RecoverResult
		args := append([]string{"recover", "-b", backend}, split.Shares[1:4]...)
		runJSON(t, &rec, "", args...)
		assert.Equal(t, "deadbeef00", rec.Secret)
		assert.Equal(t, 3, rec.SharesUsed)
	}

	var rec RecoverResult
	stdin := split.Shares[0] + "\n" + split.Shares[4] + "\n" + split.Shares[2] + "\n\n"
	runJSON(t, &rec, stdin, "recover")
	assert.Equal(t, "deadbeef00", rec.Secret)
}

func TestSplitPromptsForSecret(t *testing.T) {
	setupConfig(t)

	var split SplitResult
	runJSON(t, &split, "00ff\n", "split")
	assert.Len(t, split.Shares, 3)
	assert.Equal(t, 2, split.Threshold)
}

func TestRecoverCommandErrors(t *testing.T) {
	setupConfig(t)

	_, err := run(t, "", "recover", "abcd01")
	assert.Error(t, err)

	_, err = run(t, "", "recover", "abcd01", "abcd01")
	assert.Error(t, err)

	_, err = run(t, "", "recover", "abcd01", "zz")
	assert.Error(t, err)

	_, err = run(t, "\n", "recover")
	assert.Error(t, err)
}

func TestKeygenApplyRoundTrip(t *testing.T) {
	dir := setupConfig(t)
	keyFile := filepath.Join(dir, "keys", "signing.json")

	var gen KeygenResult
	runJSON(t, &gen, testPhrase+"\npassword1\npassword1\n",
		"keygen", "--restore", "--dim", "8", "--path", "m/0'/1", "--name", "signing", "--output", keyFile)

	assert.Equal(t, "signing", gen.Name)
	assert.Equal(t, 8, gen.Dimension)
	assert.Equal(t, "m/0'/1", gen.Path)
	assert.Empty(t, gen.Mnemonic)

	info, err := os.Stat(keyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// The same phrase and path must give the same map.
	m, err := mnemonic.FromWords(testPhrase)
	require.NoError(t, err)
	master, err := hdkey.NewMasterKey(m.Seed(""))
	require.NoError(t, err)
	child, err := master.DerivePath("m/0'/1")
	require.NoError(t, err)
	want, err := linmap.FromSeed(child.Seed(), 8, nil)
	require.NoError(t, err)
	assert.Equal(t, want.Fingerprint(), gen.Fingerprint)

	x := "0001020304050607"
	var fwd ApplyResult
	runJSON(t, &fwd, "password1\n", "apply", "--profile", "signing", "--input", x)

	xb, _ := hex.DecodeString(x)
	y := make([]byte, 8)
	want.Apply(y, xb)
	assert.Equal(t, hex.EncodeToString(y), fwd.Output)

	var back ApplyResult
	runJSON(t, &back, "password1\n", "apply", "-b", "wide", "--key", keyFile, "--inverse", "--input", fwd.Output)
	assert.Equal(t, x, back.Output)
	assert.True(t, back.Inverse)

	_, err = run(t, "wrongpass\n", "apply", "--profile", "signing", "--input", x)
	assert.Error(t, err)

	_, err = run(t, "password1\n", "apply", "--profile", "signing", "--input", "0001")
	assert.Error(t, err)

	_, err = run(t, "password1\n", "apply", "--profile", "missing", "--input", x)
	assert.Error(t, err)
}

func TestKeygenGeneratesPhrase(t *testing.T) {
	dir := setupConfig(t)

	var gen KeygenResult
	runJSON(t, &gen, "password1\npassword1\n",
		"keygen", "--words", "12", "--dim", "4", "--kdf", "argon2id", "--output", filepath.Join(dir, "k.json"))

	assert.Len(t, strings.Fields(gen.Mnemonic), 12)
	assert.Equal(t, "map-"+gen.Fingerprint, gen.Name)
	assert.Equal(t, "m/0'", gen.Path)
}

func TestKeygenErrors(t *testing.T) {
	dir := setupConfig(t)
	out := filepath.Join(dir, "k.json")

	_, err := run(t, testPhrase+"\npassword1\npassword2\n", "keygen", "--restore", "--dim", "4", "--output", out)
	assert.ErrorContains(t, err, "do not match")

	_, err = run(t, testPhrase+"\nshort\nshort\n", "keygen", "--restore", "--dim", "4", "--output", out)
	assert.Error(t, err)

	_, err = run(t, "", "keygen", "--dim", "64", "--output", out)
	assert.Error(t, err)

	_, err = run(t, "", "keygen", "--path", "x/1", "--output", out)
	assert.Error(t, err)

	_, err = run(t, "not a phrase\n", "keygen", "--restore", "--output", out)
	assert.Error(t, err)

	assert.NoFileExists(t, out)
}
