// Package handler implements the private-transfer validating state machine:
// pureChecks, preHandle and handle, exactly as spec.md §4.E describes.
//
// Corresponds to:
// com.hedera.node.app.service.token.impl.handlers.PrivateTokenTransferHandler
package handler

import (
	blake2b "github.com/minio/blake2b-simd"
	"github.com/rs/zerolog/log"

	"github.com/hederalabs/private-token-transfer/pkg/commitment"
	"github.com/hederalabs/private-token-transfer/pkg/ids"
	"github.com/hederalabs/private-token-transfer/pkg/note"
	"github.com/hederalabs/private-token-transfer/pkg/registry"
	"github.com/hederalabs/private-token-transfer/pkg/stream"
	"github.com/hederalabs/private-token-transfer/pkg/token"
)

// TransferOutput is a single output entry: an owner and the commitment
// bytes of the note being created for them. Owner is a pointer so an
// absent owner (nil) is distinguishable from a present-but-zero
// ids.AccountID{} — account 0.0.0 is a representable value, not a sentinel.
type TransferOutput struct {
	Owner      *ids.AccountID
	Commitment []byte
}

// TransferBody is the private-token-transfer payload, as spec.md §6
// describes the PrivateTokenTransferTransactionBody.
type TransferBody struct {
	Token   ids.TokenID
	Inputs  [][]byte
	Outputs []TransferOutput
	ZkProof []byte
}

// Context is the subset of the host's HandleContext the handler needs:
// who is paying, what they're asking for, and where to read/write state.
// A real host framework would supply a much richer context; this is the
// slice spec.md §4.E actually touches.
type Context struct {
	Payer     ids.AccountID
	Body      TransferBody
	Registry  *registry.Registry
	Tokens    token.Store
	Relations token.RelationStore
	Record    *stream.Builder
}

// Handler implements the three hooks a host framework invokes for a
// PRIVATE_TOKEN_TRANSFER transaction.
type Handler struct{}

// New constructs a Handler. It carries no state of its own — every piece of
// mutable state it touches is passed in via Context.
func New() *Handler {
	return &Handler{}
}

// PureChecks performs stateless validation of the transaction body
// (spec.md §4.E "pureChecks").
func (h *Handler) PureChecks(body TransferBody) error {
	if err := validateFalse(len(body.Inputs) == 0, InvalidTransactionBody, "inputs must not be empty"); err != nil {
		return err
	}
	return validateFalse(len(body.Outputs) == 0, InvalidTransactionBody, "outputs must not be empty")
}

// PreHandle is a no-op in this prototype: no additional signatures beyond
// the payer are required (spec.md §4.E "preHandle").
func (h *Handler) PreHandle(_ Context) error {
	return nil
}

// Handle runs the validating state machine described in spec.md §4.E. No
// mutation of ctx.Registry occurs until every check in steps 1-5 passes;
// steps 6-7 then consume inputs and emit outputs together.
func (h *Handler) Handle(ctx Context) error {
	op := ctx.Body
	tokenID := op.Token

	// Step 1: token must exist and be FUNGIBLE_PRIVATE.
	tok, err := ctx.Tokens.GetIfUsable(tokenID)
	if err != nil {
		return fail(InvalidTransactionBody, "token not found")
	}
	if err := validateTrue(tok.Type == token.FungiblePrivate, NotSupported, "token is not FUNGIBLE_PRIVATE"); err != nil {
		return err
	}

	// Step 2: re-assert non-empty inputs/outputs.
	if err := validateFalse(len(op.Inputs) == 0, InvalidTransactionBody, "inputs must not be empty"); err != nil {
		return err
	}
	if err := validateFalse(len(op.Outputs) == 0, InvalidTransactionBody, "outputs must not be empty"); err != nil {
		return err
	}

	// Step 3: resolve and authorize each input.
	inputInfos := make([]note.Note, 0, len(op.Inputs))
	for _, c := range op.Inputs {
		if err := validateFalse(len(c) == 0, InvalidTransactionBody, "input commitment must not be empty"); err != nil {
			return err
		}
		info, found := ctx.Registry.Get(tokenID, c)
		if err := validateTrue(found, InvalidTransactionBody, "unknown input commitment"); err != nil {
			return err
		}
		if err := validateTrue(info.Owner == ctx.Payer, Unauthorized, "input owner does not match payer"); err != nil {
			return err
		}
		if err := h.ensureAssociation(tok, info.Owner, ctx.Relations); err != nil {
			return err
		}
		inputInfos = append(inputInfos, info)
	}

	// Step 4: validate each output's owner and association.
	outputCommitments := make([][]byte, 0, len(op.Outputs))
	for _, out := range op.Outputs {
		if err := validateTrue(out.Owner != nil, InvalidTransactionBody, "output must declare an owner"); err != nil {
			return err
		}
		if err := validateFalse(len(out.Commitment) == 0, InvalidTransactionBody, "output commitment must not be empty"); err != nil {
			return err
		}
		if err := h.ensureAssociation(tok, *out.Owner, ctx.Relations); err != nil {
			return err
		}
		outputCommitments = append(outputCommitments, out.Commitment)
	}

	// Step 5: conservation of value.
	inputCommitments := make([][]byte, len(inputInfos))
	for i, info := range inputInfos {
		inputCommitments[i] = info.Commitment
	}
	matches, err := commitment.SumsMatch(inputCommitments, outputCommitments)
	if err != nil {
		return fail(InvalidTransactionBody, "invalid commitment encoding")
	}
	if err := validateTrue(matches, InvalidTransactionBody, "input/output commitment sums do not match"); err != nil {
		return err
	}

	// Step 6: consume inputs. All checks passed; no rollback exists beyond
	// this point, so nothing above this line may mutate ctx.Registry.
	for _, info := range inputInfos {
		if _, removed := ctx.Registry.Remove(tokenID, info.Commitment); !removed {
			return fail(InvalidTransactionBody, "input commitment was consumed concurrently")
		}
	}

	// Step 7: emit outputs.
	for _, out := range op.Outputs {
		n, err := note.External(tokenID, *out.Owner, out.Commitment)
		if err != nil {
			return fail(InvalidTransactionBody, "invalid output commitment")
		}
		ctx.Registry.Put(n)
	}

	// Step 8: log the zkProof blob size only; never interpret it.
	if len(op.ZkProof) > 0 {
		log.Debug().
			Str("token", tokenID.String()).
			Int("zk_proof_bytes", len(op.ZkProof)).
			Msg("received opaque zk proof blob")
	}

	log.Info().
		Str("token", tokenID.String()).
		Int("inputs", len(inputInfos)).
		Int("outputs", len(op.Outputs)).
		Msg("processed private token transfer")

	// Step 9: tag the stream record.
	if ctx.Record != nil {
		ctx.Record.TokenType(token.FungiblePrivate).Digest(receiptDigest(tokenID, inputCommitments, outputCommitments))
	}

	return nil
}

func (h *Handler) ensureAssociation(tok token.Token, owner ids.AccountID, relations token.RelationStore) error {
	relation, err := relations.GetIfUsable(owner, tok.ID)
	if err != nil {
		return fail(TokenNotAssociatedToAccount, "no token relation for account")
	}
	if tok.KYCKey {
		if err := validateTrue(relation.KYCGranted, AccountKYCNotGrantedForToken, "KYC not granted"); err != nil {
			return err
		}
	}
	return nil
}

// receiptDigestPersonalization must be exactly 16 bytes, as required by the
// BLAKE2b personalization parameter.
const receiptDigestPersonalization = "PTTransferDigest"

// receiptDigest computes the personalized BLAKE2b-256 digest described in
// SPEC_FULL.md §4.E: a non-authoritative correlation aid attached to the
// stream record, never consulted by validation.
func receiptDigest(tokenID ids.TokenID, inputs, outputs [][]byte) [32]byte {
	var out [32]byte

	h, err := blake2b.New(&blake2b.Config{Size: 32, Person: []byte(receiptDigestPersonalization)})
	if err != nil {
		return out
	}

	writeLengthPrefixed := func(b []byte) {
		h.Write([]byte{byte(len(b) >> 24), byte(len(b) >> 16), byte(len(b) >> 8), byte(len(b))})
		h.Write(b)
	}

	h.Write([]byte(tokenID.String()))
	for _, c := range inputs {
		writeLengthPrefixed(c)
	}
	for _, c := range outputs {
		writeLengthPrefixed(c)
	}

	copy(out[:], h.Sum(nil))
	return out
}
