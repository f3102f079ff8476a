package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/database"
	"github.com/spacemeshos/go-txfactory/extrinsic"
	"github.com/spacemeshos/go-txfactory/filesystem"
	"github.com/spacemeshos/go-txfactory/log"
)

var (
	errRoundTrip = errors.New("encoding is not canonical")
	errID        = errors.New("id doesn't match extrinsic")
	errNonce     = errors.New("nonce doesn't match index")
	errSignature = errors.New("invalid signature")
)

func verifyCommand(conf *config.Config, configure func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "check signatures and encoding of stored extrinsics",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := configure(c); err != nil {
				return err
			}
			return verify(c, conf)
		},
	}
}

func verify(c *cobra.Command, conf *config.Config) error {
	logger, err := conf.LOGGING.Logger(AppLogger)
	if err != nil {
		return log.ErrMalformedConfig(err)
	}
	fl, err := filesystem.Lock(conf.LockPath())
	if err != nil {
		return log.ErrLockDataDir(err)
	}
	defer fl.Unlock()

	storeLogger, _ := conf.LOGGING.Logger(StoreLogger)
	db, err := database.NewLDBDatabase(conf.StorePath(), conf.StoreCache, conf.StoreHandles, storeLogger)
	if err != nil {
		return log.ErrOpenStore(err)
	}
	store := database.NewStore(db)
	defer store.Close()

	additional := conf.Chain.Chain().Additional()
	var total, invalid int
	err = store.Iterate(func(rec *database.Record) bool {
		total++
		if err := verifyRecord(rec, &additional); err != nil {
			invalid++
			logger.Warn("invalid extrinsic",
				zap.Uint32("worker", rec.Worker),
				zap.Uint32("index", rec.Index),
				zap.Stringer("id", rec.ID),
				zap.Error(err),
			)
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("iterate store: %w", err)
	}
	fmt.Fprintf(c.OutOrStdout(), "verified %d extrinsics, %d invalid\n", total, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d of %d extrinsics are invalid", invalid, total)
	}
	return nil
}

func verifyRecord(rec *database.Record, additional *extrinsic.AdditionalSigned) error {
	var ue extrinsic.UncheckedExtrinsic
	if err := codec.Decode(rec.Raw, &ue); err != nil {
		return err
	}
	raw, err := codec.Encode(&ue)
	if err != nil {
		return err
	}
	switch {
	case !bytes.Equal(raw, rec.Raw):
		return errRoundTrip
	case extrinsic.ID(rec.Raw) != rec.ID:
		return errID
	case !ue.IsSigned() || ue.Signature.Extra.Nonce != rec.Index:
		return errNonce
	case !extrinsic.Verify(&ue, *additional):
		return errSignature
	}
	return nil
}
