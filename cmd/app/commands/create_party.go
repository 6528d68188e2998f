package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	partyDomain "github.com/allisson/ssotoken/internal/party/domain"
	partyUseCase "github.com/allisson/ssotoken/internal/party/usecase"
)

// RunCreateParty registers a new party with an SSO shared secret.
// When ssoKeyHex is empty a fresh 256-bit key is generated. An optional
// privacy key enables per-attribute field encryption. Outputs the party
// ID, the plain API secret, and the SSO key in either text or JSON format.
// The API secret and SSO key are shown only once.
//
// Requirements: Database must be migrated and accessible, KMS keeper configured.
func RunCreateParty(
	ctx context.Context,
	useCase partyUseCase.PartyUseCase,
	logger *slog.Logger,
	name string,
	domain string,
	ssoKeyHex string,
	privacyKeyHex string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new party", slog.String("name", name))

	generated := false
	if ssoKeyHex == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate sso key: %w", err)
		}
		ssoKeyHex = hex.EncodeToString(key)
		generated = true
	}

	input := &partyDomain.CreatePartyInput{
		Name:          name,
		Domain:        domain,
		SSOKeyHex:     ssoKeyHex,
		PrivacyKeyHex: privacyKeyHex,
		IsActive:      isActive,
	}

	output, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create party: %w", err)
	}

	if format == "json" {
		outputPartyJSON(output, ssoKeyHex, io.Writer)
	} else {
		outputPartyText(output, ssoKeyHex, generated, io.Writer)
	}

	logger.Info("party created successfully",
		slog.String("party_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// outputPartyText outputs the result in human-readable text format.
func outputPartyText(output *partyDomain.CreatePartyOutput, ssoKeyHex string, generated bool, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nParty created successfully!")
	_, _ = fmt.Fprintf(writer, "Party ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "API Secret: %s\n", output.PlainAPISecret)
	if generated {
		_, _ = fmt.Fprintf(writer, "SSO Key (generated): %s\n", ssoKeyHex)
	} else {
		_, _ = fmt.Fprintf(writer, "SSO Key: %s\n", ssoKeyHex)
	}
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The API secret is shown only once. Store it securely.")
	_, _ = fmt.Fprintln(writer, "Share the SSO key out of band with the party that decodes tokens.")
}

// outputPartyJSON outputs the result in JSON format for machine consumption.
func outputPartyJSON(output *partyDomain.CreatePartyOutput, ssoKeyHex string, writer io.Writer) {
	result := map[string]string{
		"party_id":   output.ID.String(),
		"api_secret": output.PlainAPISecret,
		"sso_key":    ssoKeyHex,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
