package secrets

import (
	"bytes"
	"testing"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	identity, recipient := writeIdentity(t)
	plaintext := []byte("API_KEY=hunter2\n")

	ciphertext, err := Age{}.Encrypt([]string{recipient}, plaintext)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ciphertext, []byte(intro)))

	decrypted, err := Age{}.Decrypt([]string{identity}, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptIsRandomized(t *testing.T) {
	_, recipient := writeIdentity(t)
	plaintext := []byte("same input")

	first, err := Age{}.Encrypt([]string{recipient}, plaintext)
	require.NoError(t, err)
	second, err := Age{}.Encrypt([]string{recipient}, plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEncryptToMultipleRecipients(t *testing.T) {
	aliceKey, alice := writeIdentity(t)
	bobKey, bob := writeIdentity(t)
	sshKey, sshRecipient := writeSSHIdentity(t, "")

	ciphertext, err := Age{}.Encrypt([]string{alice, bob, sshRecipient}, []byte("shared"))
	require.NoError(t, err)

	for _, identity := range []string{aliceKey, bobKey, sshKey} {
		decrypted, err := Age{}.Decrypt([]string{identity}, ciphertext)
		require.NoError(t, err, identity)
		assert.Equal(t, []byte("shared"), decrypted)
	}
}

func TestEncryptErrors(t *testing.T) {
	_, err := Age{}.Encrypt(nil, []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrNoRecipients)

	_, err = Age{}.Encrypt([]string{"garbage"}, []byte("x"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidRecipient)
}

func TestDecryptErrors(t *testing.T) {
	identity, recipient := writeIdentity(t)
	otherIdentity, _ := writeIdentity(t)

	ciphertext, err := Age{}.Encrypt([]string{recipient}, []byte("secret"))
	require.NoError(t, err)

	t.Run("plaintext input", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{identity}, []byte("hello world\n"))
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("plaintext input with broken identities", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{"/does/not/exist"}, []byte("hello"))
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("no identities", func(t *testing.T) {
		_, err := Age{}.Decrypt(nil, ciphertext)
		assert.ErrorIs(t, err, kerrors.ErrNoIdentities)
	})

	t.Run("wrong identity", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{otherIdentity}, ciphertext)
		require.Error(t, err)
		assert.NotErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{identity}, ciphertext[:40])
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("intro line only", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{identity}, []byte(intro))
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("malformed header after intro", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{identity}, []byte(intro+"this is not a stanza\n"))
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
	})

	t.Run("truncated header is not an identity problem", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{"/does/not/exist"}, ciphertext[:40])
		assert.ErrorIs(t, err, kerrors.ErrNotEncrypted)
		assert.NotErrorIs(t, err, kerrors.ErrInvalidIdentity)
	})

	t.Run("missing identity file", func(t *testing.T) {
		_, err := Age{}.Decrypt([]string{"/does/not/exist"}, ciphertext)
		assert.ErrorIs(t, err, kerrors.ErrInvalidIdentity)
	})
}

func TestDecryptArmored(t *testing.T) {
	identity, recipient := writeIdentity(t)
	ciphertext, err := Age{}.Encrypt([]string{recipient}, []byte("armored"))
	require.NoError(t, err)

	var armored bytes.Buffer
	w := armor.NewWriter(&armored)
	_, err = w.Write(ciphertext)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	decrypted, err := Age{}.Decrypt([]string{identity}, armored.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte("armored"), decrypted)
}

func TestDecryptRejectsPassphraseEnvelope(t *testing.T) {
	identity, _ := writeIdentity(t)

	scrypt, err := age.NewScryptRecipient("correct horse")
	require.NoError(t, err)
	scrypt.SetWorkFactor(10)

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, scrypt)
	require.NoError(t, err)
	_, err = w.Write([]byte("password protected"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Age{}.Decrypt([]string{identity}, buf.Bytes())
	assert.ErrorIs(t, err, kerrors.ErrPassphraseEncrypted)
}

func TestSniff(t *testing.T) {
	_, recipient := writeIdentity(t)
	ciphertext, err := Age{}.Encrypt([]string{recipient}, []byte("x"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  []byte
		format Format
	}{
		{"empty", nil, FormatPlaintext},
		{"short prefix of intro", []byte("age-encryption"), FormatPlaintext},
		{"plain text", []byte("just some text\n"), FormatPlaintext},
		{"binary noise", []byte{0x00, 0xff, 0x10, 0x80}, FormatPlaintext},
		{"broken armor", []byte(armor.Header + "\n!!!!\n"), FormatPlaintext},
		{"recipient envelope", ciphertext, FormatRecipients},
		{"intro line only", []byte(intro), FormatRecipients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, format := Sniff(tt.input)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestSniffReturnsPlaintextUnchanged(t *testing.T) {
	input := []byte("leave me alone")
	payload, format := Sniff(input)
	assert.Equal(t, FormatPlaintext, format)
	assert.Equal(t, input, payload)
}
