package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

const metadataTimeout = 5 * time.Second

// PublicHost returns the host other machines should use to reach a server
// listening on listenHost. Specific listen addresses are returned as-is.
// For wildcard addresses it asks ECS container metadata when
// ECS_CONTAINER_METADATA_URI is set, then falls back to IP, then localhost.
func PublicHost(ctx context.Context, listenHost string) (string, error) {
	if !isWildcard(listenHost) {
		return listenHost, nil
	}

	if metadataUrl := os.Getenv("ECS_CONTAINER_METADATA_URI"); metadataUrl != "" {
		ip, err := getAwsIp(ctx, metadataUrl)
		if err != nil {
			return "", fmt.Errorf("error getting AWS ECS IP: %v", err)
		}
		zap.L().Info("Got AWS ECS IP", zap.String("ip", ip))
		return ip, nil
	}

	if ip := os.Getenv("IP"); ip != "" {
		return ip, nil
	}

	return "localhost", nil
}

func isWildcard(h string) bool {
	return h == "" || h == "0.0.0.0" || h == "::" || h == "[::]"
}

type ecsMetadata struct {
	Networks []struct {
		IPv4Addresses []string `json:"IPv4Addresses"`
	} `json:"Networks"`
}

func getAwsIp(ctx context.Context, metadataUrl string) (string, error) {
	zap.L().Debug("Getting ECS metadata", zap.String("url", metadataUrl))

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataUrl, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var metadata ecsMetadata
	err = json.Unmarshal(body, &metadata)
	if err != nil {
		return "", err
	}

	if len(metadata.Networks) == 0 || len(metadata.Networks[0].IPv4Addresses) == 0 {
		return "", errors.New("no IP address found in ECS metadata")
	}

	return metadata.Networks[0].IPv4Addresses[0], nil
}
