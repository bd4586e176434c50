// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Binary phal_cli is a small client for the local PHAL attribute database
// service.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/gnxi/utils/xpath"
	pb "github.com/openconfig/gnmi/proto/gnmi"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

var address string

func main() {
	rootCmd := &cobra.Command{
		Use:   "phal_cli",
		Short: "Query and modify the PHAL attribute database",
	}
	rootCmd.PersistentFlags().StringVar(&address, "address", "localhost:28002", "address of the PHAL attribute database service")
	rootCmd.AddCommand(getCmd(), setCmd(), subscribeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dial() (pb.GNMIClient, *grpc.ClientConn, error) {
	conn, err := grpc.Dial(address, grpc.WithInsecure())
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to %s: %v", address, err)
	}
	return pb.NewGNMIClient(conn), conn, nil
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Read an attribute subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := xpath.ToGNMIPath(args[0])
			if err != nil {
				return fmt.Errorf("invalid path %q: %v", args[0], err)
			}
			client, conn, err := dial()
			if err != nil {
				return err
			}
			defer conn.Close()
			resp, err := client.Get(context.Background(), &pb.GetRequest{Path: []*pb.Path{path}})
			if err != nil {
				return err
			}
			for _, n := range resp.GetNotification() {
				for _, u := range n.GetUpdate() {
					fmt.Println(u.GetVal())
				}
			}
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write one attribute",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := xpath.ToGNMIPath(args[0])
			if err != nil {
				return fmt.Errorf("invalid path %q: %v", args[0], err)
			}
			client, conn, err := dial()
			if err != nil {
				return err
			}
			defer conn.Close()
			_, err = client.Set(context.Background(), &pb.SetRequest{
				Update: []*pb.Update{{Path: path, Val: parseValue(args[1])}},
			})
			return err
		},
	}
}

func subscribeCmd() *cobra.Command {
	var intervalSeconds uint64
	cmd := &cobra.Command{
		Use:   "subscribe <path>",
		Short: "Stream attribute subtree snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := xpath.ToGNMIPath(args[0])
			if err != nil {
				return fmt.Errorf("invalid path %q: %v", args[0], err)
			}
			client, conn, err := dial()
			if err != nil {
				return err
			}
			defer conn.Close()
			stream, err := client.Subscribe(context.Background())
			if err != nil {
				return err
			}
			req := &pb.SubscribeRequest{
				Request: &pb.SubscribeRequest_Subscribe{
					Subscribe: &pb.SubscriptionList{
						Mode: pb.SubscriptionList_STREAM,
						Subscription: []*pb.Subscription{{
							Path:           path,
							SampleInterval: intervalSeconds,
						}},
					},
				},
			}
			if err := stream.Send(req); err != nil {
				return err
			}
			for {
				resp, err := stream.Recv()
				if err != nil {
					return err
				}
				if update := resp.GetUpdate(); update != nil {
					fmt.Printf("%s %v\n", time.Now().Format(time.RFC3339), update.GetUpdate())
				}
			}
		},
	}
	cmd.Flags().Uint64Var(&intervalSeconds, "interval", 1, "polling interval in seconds")
	return cmd
}

// parseValue maps a CLI literal to a typed value: bool, then integer, then
// string.
func parseValue(arg string) *pb.TypedValue {
	if b, err := strconv.ParseBool(arg); err == nil {
		return &pb.TypedValue{Value: &pb.TypedValue_BoolVal{BoolVal: b}}
	}
	if u, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return &pb.TypedValue{Value: &pb.TypedValue_UintVal{UintVal: u}}
	}
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return &pb.TypedValue{Value: &pb.TypedValue_IntVal{IntVal: i}}
	}
	return &pb.TypedValue{Value: &pb.TypedValue_StringVal{StringVal: arg}}
}
