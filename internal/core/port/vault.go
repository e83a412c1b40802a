package port

type SecretVault interface {
	Encrypt(plain []byte) (string, error)
	Decrypt(token string) ([]byte, error)
}
