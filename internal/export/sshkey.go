package export

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/nvinuesa/puxporter/internal/onepux"
)

// sshKeyLines derives an informational block for SSH Key items: key type,
// SHA256 fingerprint, and the public key in OpenSSH form. Returns nil when
// the item carries no parseable private key; encrypted keys are left
// alone.
func sshKeyLines(item *onepux.Item) []string {
	keyText := privateKeyText(item)
	if keyText == "" {
		return nil
	}

	signer, err := ssh.ParsePrivateKey([]byte(keyText))
	if err != nil {
		return nil
	}

	pub := signer.PublicKey()
	return []string{
		"Key Type: " + keyTypeName(pub),
		"Fingerprint: " + fingerprint(pub),
		"Public Key: " + strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub))),
	}
}

// privateKeyText finds the private key value among the item's section
// fields.
func privateKeyText(item *onepux.Item) string {
	for _, section := range item.Details.Sections {
		for _, field := range section.Fields {
			if !strings.EqualFold(field.Title, "private key") {
				continue
			}
			switch field.Value.Kind {
			case onepux.KindConcealed, onepux.KindString, onepux.KindScalar:
				return field.Value.Scalar
			}
		}
	}
	return ""
}

// fingerprint computes the SHA256 fingerprint of a public key.
func fingerprint(pub ssh.PublicKey) string {
	hash := sha256.Sum256(pub.Marshal())
	return "SHA256:" + base64.RawStdEncoding.EncodeToString(hash[:])
}

// keyTypeName maps wire key types to short display names.
func keyTypeName(pub ssh.PublicKey) string {
	switch t := pub.Type(); t {
	case "ssh-ed25519":
		return "ed25519"
	case "ssh-rsa":
		return "rsa"
	case "ecdsa-sha2-nistp256", "ecdsa-sha2-nistp384", "ecdsa-sha2-nistp521":
		return "ecdsa"
	case "ssh-dss":
		return "dsa"
	default:
		return t
	}
}
