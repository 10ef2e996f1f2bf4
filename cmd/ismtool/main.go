// ismtool is a relayer-side debugging utility for the ISM verification
// core: it computes message ids, validator set commitments and checkpoint
// digests, and decodes metadata buffers, all from hex on the command line.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/util"
	"github.com/hyperlane-xyz/hyperlane-monorepo-sub001/x/ism/types"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ismtool",
		Short:        "Inspect Hyperlane ISM messages, commitments and metadata",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		messageIDCmd(),
		commitmentCmd(),
		digestCmd(),
		decodeMetadataCmd(),
	)

	return cmd
}

func messageIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message-id [message-hex]",
		Short: "Parse a wire-encoded message and print its fields and id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := types.DecodeHex(args[0])
			if err != nil {
				return err
			}

			msg, err := util.ParseHyperlaneMessage(bz)
			if err != nil {
				return err
			}

			cmd.Printf("version:     %d\n", msg.Version)
			cmd.Printf("nonce:       %d\n", msg.Nonce)
			cmd.Printf("origin:      %d\n", msg.Origin)
			cmd.Printf("sender:      %s\n", msg.Sender)
			cmd.Printf("destination: %d\n", msg.Destination)
			cmd.Printf("recipient:   %s\n", msg.Recipient)
			cmd.Printf("body:        %d bytes\n", len(msg.Body))
			cmd.Printf("id:          %s\n", msg.Id())

			return nil
		},
	}
}

func commitmentCmd() *cobra.Command {
	var threshold uint8

	cmd := &cobra.Command{
		Use:   "commitment [validator-hex...]",
		Short: "Compute the commitment hash of a threshold and ordered validator list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			validators := make([]util.HexAddress, 0, len(args))
			for _, arg := range args {
				v, err := util.DecodeHexAddress(arg)
				if err != nil {
					return fmt.Errorf("invalid validator address %q: %w", arg, err)
				}
				validators = append(validators, v)
			}

			vat := types.ValidatorsAndThreshold{Validators: validators, Threshold: threshold}
			if err := vat.Validate(); err != nil {
				return err
			}

			cmd.Println(types.EncodeHex(vat.Commitment()))

			return nil
		},
	}

	cmd.Flags().Uint8Var(&threshold, "threshold", 1, "signing threshold")

	return cmd
}

func digestCmd() *cobra.Command {
	var (
		origin uint32
		index  uint32
		hook   string
		root   string
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Compute the checkpoint digest validators sign",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hookAddr, err := util.DecodeHexAddress(hook)
			if err != nil {
				return fmt.Errorf("invalid hook address: %w", err)
			}

			rootBz, err := types.DecodeHex(root)
			if err != nil || len(rootBz) != 32 {
				return fmt.Errorf("root must be 32 hex-encoded bytes")
			}

			checkpoint := types.Checkpoint{
				Root:           common.BytesToHash(rootBz),
				Index:          index,
				Origin:         origin,
				MerkleTreeHook: hookAddr,
			}

			cmd.Println(checkpoint.Digest())

			return nil
		},
	}

	cmd.Flags().Uint32Var(&origin, "origin", 0, "origin domain")
	cmd.Flags().Uint32Var(&index, "index", 0, "checkpoint index")
	cmd.Flags().StringVar(&hook, "hook", "", "origin merkle tree hook address (32-byte hex)")
	cmd.Flags().StringVar(&root, "root", "", "checkpoint root (32-byte hex)")

	for _, flag := range []string{"origin", "hook", "root"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	return cmd
}

func decodeMetadataCmd() *cobra.Command {
	var modules int

	cmd := &cobra.Command{
		Use:   "decode-metadata [metadata-hex]",
		Short: "Decode a multisig metadata buffer, or its aggregation offset table with --modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := types.DecodeHex(args[0])
			if err != nil {
				return err
			}

			if modules > 0 {
				ranges, err := types.DecodeAggregationOffsets(bz, modules)
				if err != nil {
					return err
				}

				for i, r := range ranges {
					if r.IsZero() {
						cmd.Printf("submodule %d: no metadata\n", i)
						continue
					}
					cmd.Printf("submodule %d: [%d:%d] (%d bytes)\n", i, r.Start, r.End, r.End-r.Start)
				}

				return nil
			}

			md, err := types.NewMultisigMetadata(bz)
			if err != nil {
				return err
			}

			cmd.Printf("root:       %s\n", md.Root)
			cmd.Printf("index:      %d\n", md.Index)
			cmd.Printf("hook:       %s\n", md.MerkleTreeHook)
			cmd.Printf("signatures: %d\n", len(md.Signatures))
			cmd.Printf("validators: %d\n", len(md.Validators))
			for _, v := range md.Validators {
				cmd.Printf("  %s\n", v)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&modules, "modules", 0, "decode as an aggregation offset table for this many submodules")

	return cmd
}
