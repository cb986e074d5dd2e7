package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/client"
	"github.com/alfredjeanlab/salesdash/internal/server"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check that a sales server is up",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		grpcAddr, _ := cmd.Flags().GetString("grpc")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result := map[string]string{}

		status, err := salesClient.Health(ctx)
		if err != nil {
			return fmt.Errorf("http health: %w", err)
		}
		result["http"] = status

		if grpcAddr != "" {
			hc, err := client.NewGRPCHealthClient(grpcAddr)
			if err != nil {
				return err
			}
			defer hc.Close()
			grpcStatus, err := hc.Check(ctx, server.HealthServiceName)
			if err != nil {
				return err
			}
			result["grpc"] = grpcStatus
		}

		if jsonOutput {
			return printJSON(result)
		}
		fmt.Printf("%s %s\n", ui.RenderHeader("http:"), result["http"])
		if g, ok := result["grpc"]; ok {
			line := g
			if g != "serving" {
				line = ui.RenderWarn(g)
			}
			fmt.Printf("%s %s\n", ui.RenderHeader("grpc:"), line)
		}
		if g, ok := result["grpc"]; ok && g != "serving" {
			return fmt.Errorf("grpc health is %s", g)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().String("grpc", "", "also query the gRPC health service at this address")
}
