package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/shop"
)

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-2]) + ".."
	}
	return s
}

func parseMoneyFlag(name, raw string) (shop.Money, error) {
	m, err := shop.ParseMoney(raw)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return m, nil
}

func optionalMoneyFlag(name, raw string) (*shop.Money, error) {
	if raw == "" {
		return nil, nil
	}
	m, err := parseMoneyFlag(name, raw)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// saveFile writes a download to out, or to its server-suggested name in the
// working directory.
func saveFile(f *client.File, out string) (string, error) {
	if out == "" {
		out = filepath.Base(f.Name)
	}
	if out == "-" {
		_, err := os.Stdout.Write(f.Body)
		return out, err
	}
	if err := os.WriteFile(out, f.Body, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

func amount(m shop.Money) string {
	return shop.FormatAmount(m, cfg.Currency)
}
