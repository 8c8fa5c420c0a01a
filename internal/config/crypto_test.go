package config

import (
	"os"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", "too-short")

		defer func() {
			if r := recover(); r == nil {
				t.Error("InitCrypto should panic when CRYPTO_KEY is not 32 bytes")
			}
		}()

		InitCrypto()
	})

	t.Run("ValidKey", func(t *testing.T) {
		os.Setenv("CRYPTO_KEY", testKey)
		InitCrypto()
	})
}

func TestSealUnseal(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	InitCrypto()

	t.Run("RoundTrip", func(t *testing.T) {
		payload := "7a6e1f1e-9a68-4c0b-b7b1-3b1f2a9f0c11"

		code, err := Seal(payload)
		if err != nil {
			t.Fatalf("Seal failed: %v", err)
		}

		got, err := Unseal(code)
		if err != nil {
			t.Fatalf("Unseal failed: %v", err)
		}
		if got != payload {
			t.Errorf("round trip mismatch. want %q, got %q", payload, got)
		}
	})

	t.Run("DistinctCodesPerCall", func(t *testing.T) {
		a, err := Seal("same-payload")
		if err != nil {
			t.Fatalf("Seal failed: %v", err)
		}
		b, err := Seal("same-payload")
		if err != nil {
			t.Fatalf("Seal failed: %v", err)
		}
		if a == b {
			t.Error("two Seal calls produced identical codes; nonce is not random")
		}
	})

	t.Run("GarbageInput", func(t *testing.T) {
		if _, err := Unseal("not a code"); err != ErrInvalidCode {
			t.Errorf("want ErrInvalidCode, got %v", err)
		}
	})

	t.Run("TamperedCode", func(t *testing.T) {
		code, err := Seal("payload")
		if err != nil {
			t.Fatalf("Seal failed: %v", err)
		}
		tampered := "A" + code[1:]
		if tampered == code {
			tampered = "B" + code[1:]
		}
		if _, err := Unseal(tampered); err != ErrInvalidCode {
			t.Errorf("want ErrInvalidCode for tampered code, got %v", err)
		}
	})
}
