package pairwise

import (
	"crypto/rand"
	"reflect"
	"testing"
)

func TestBoxEncryptDecrypt(t *testing.T) {
	skA, _, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	_, pkB, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	key, err := skA.Ecdh(pkB, []byte("ctx"))
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("Keep Calm and Carry On")
	nonce, ciphertext, err := key.Seal(msg, []byte("ad"))
	if err != nil {
		t.Fatal(err)
	}

	plaintext, err := key.Open(nonce, ciphertext, []byte("ad"))
	if err != nil {
		t.Fatal(err)
	}
	if string(plaintext) != string(msg) {
		t.Fatalf("unexpected plaintext: %q", plaintext)
	}
}

func TestBoxCiphertextRandomized(t *testing.T) {
	sk, _, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	_, pk, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := sk.Ecdh(pk, []byte("ctx"))
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("Why do we tell actors to 'break a leg?'")

	_, ct1, err := key.Seal(msg, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, ct2, err := key.Seal(msg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(ct1) != len(ct2) {
		t.Fatalf("expected equal-length ciphertexts (%d vs %d)", len(ct1), len(ct2))
	}
	if reflect.DeepEqual(ct1, ct2) {
		t.Fatalf("expected distinct ciphertexts from distinct nonces")
	}
}

func TestBoxGracefullyHandleBrokenCipher(t *testing.T) {
	sk, _, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	_, pk, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := sk.Ecdh(pk, []byte("ctx"))
	if err != nil {
		t.Fatal(err)
	}

	nonce := make([]byte, NonceSize)
	brokenCiphertext := []byte{0x01, 0x02, 0x03}

	if _, err := key.Open(nonce, brokenCiphertext, nil); err == nil {
		t.Fatal("expected decryption of broken ciphertext to fail")
	}
}

func TestEcdhAgreement(t *testing.T) {
	skA, pkA, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	skB, pkB, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	keyAB, err := skA.Ecdh(pkB, []byte("ctx"))
	if err != nil {
		t.Fatal(err)
	}
	keyBA, err := skB.Ecdh(pkA, []byte("ctx"))
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("shared secret check")
	nonce, ciphertext, err := keyAB.Seal(msg, nil)
	if err != nil {
		t.Fatal(err)
	}
	plaintext, err := keyBA.Open(nonce, ciphertext, nil)
	if err != nil {
		t.Fatalf("symmetric keys disagree: %v", err)
	}
	if string(plaintext) != string(msg) {
		t.Fatalf("unexpected plaintext: %q", plaintext)
	}
}
