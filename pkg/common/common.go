package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 generates a cluster-unique int64 identifier
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// Sha256HashWithSalt returns hex(sha256(value+salt))
func Sha256HashWithSalt(value string, salt string) string {
	sum := sha256.Sum256([]byte(value + salt))
	return hex.EncodeToString(sum[:])
}

// GetSecretSalt reads the password salt from the environment, falling back
// to a fixed development salt.
func GetSecretSalt() string {
	if salt := os.Getenv("STOREFRONT_SECRET_SALT"); salt != "" {
		return salt
	}
	return "storefront-dev-salt"
}

// FileExists checks a path without caring why stat failed
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
