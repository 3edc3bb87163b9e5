package secrets

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// writeIdentity generates an X25519 identity, stores it in a temporary
// identity file and returns the file path and the matching recipient.
func writeIdentity(t *testing.T) (string, string) {
	t.Helper()

	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.txt")
	content := fmt.Sprintf("# created: test\n# public key: %s\n%s\n", id.Recipient(), id)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path, id.Recipient().String()
}

// writeSSHIdentity generates an ed25519 key, stores the OpenSSH private key
// (optionally passphrase protected) and returns its path and authorized key line.
func writeSSHIdentity(t *testing.T, passphrase string) (string, string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(priv, "")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "", []byte(passphrase))
	}
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	return path, strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
}

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// pluginRecipientString builds a syntactically valid age1<name>1... recipient.
func pluginRecipientString(t *testing.T, name string) string {
	t.Helper()

	data := make([]byte, 32)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return bech32Encode("age1"+name, data)
}

func bech32Encode(hrp string, data []byte) string {
	var values []byte
	acc, bits := 0, 0
	for _, b := range data {
		acc = (acc<<8 | int(b)) & 0x1fff
		bits += 8
		for bits >= 5 {
			bits -= 5
			values = append(values, byte(acc>>bits)&31)
		}
	}
	if bits > 0 {
		values = append(values, byte(acc<<(5-bits))&31)
	}

	checksumInput := append(bech32HRPExpand(hrp), values...)
	checksumInput = append(checksumInput, 0, 0, 0, 0, 0, 0)
	polymod := bech32Polymod(checksumInput) ^ 1

	var b strings.Builder
	b.WriteString(hrp)
	b.WriteString("1")
	for _, v := range values {
		b.WriteByte(bech32Charset[v])
	}
	for i := 0; i < 6; i++ {
		b.WriteByte(bech32Charset[(polymod>>uint(5*(5-i)))&31])
	}
	return b.String()
}

func bech32HRPExpand(hrp string) []byte {
	out := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, hrp[i]&31)
	}
	return out
}

func bech32Polymod(values []byte) uint32 {
	gen := []uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}
