// chunkworker is an example host loop for the compute kernel: it reads
// newline-delimited JSON messages from stdin, dispatches them to a
// worker.Worker, and writes newline-delimited JSON responses to
// stdout. A real host embeds the worker package directly and manages
// many workers across goroutines or processes; this binary exists to
// exercise the message boundary end to end from the command line.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"voxelworker/internal/config"
	"voxelworker/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML world config to init the worker with (optional; otherwise wait for an init message on stdin)")
	flag.Parse()

	fmt.Fprintln(os.Stderr, "chunkworker starting")

	w := worker.New()
	fmt.Fprintf(os.Stderr, "worker id: %s\n", w.ID)

	out := json.NewEncoder(os.Stdout)

	if *configPath != "" {
		file, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		ack := w.HandleInit(file.ToInitMessage())
		if err := out.Encode(ack); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write initialized ack: %v\n", err)
			os.Exit(1)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &envelope); err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse message: %v\n", err)
			continue
		}

		if err := dispatch(w, envelope.Type, line, out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to handle %q message: %v\n", envelope.Type, err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "stdin read error: %v\n", err)
		os.Exit(1)
	}
}

// dispatch decodes one ingress message by its `type` tag, runs it
// against w, and encodes every resulting egress message to out in
// order (primary response first, then any neighbour re-meshes).
func dispatch(w *worker.Worker, msgType string, raw []byte, out *json.Encoder) error {
	switch msgType {
	case "init":
		var msg worker.InitMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("decode init: %w", err)
		}
		return out.Encode(w.HandleInit(msg))

	case "requestChunk":
		var msg worker.RequestChunkMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("decode requestChunk: %w", err)
		}
		resp, updates := w.HandleRequestChunk(msg)
		if err := out.Encode(resp); err != nil {
			return err
		}
		for _, u := range updates {
			if err := out.Encode(u); err != nil {
				return err
			}
		}
		return nil

	case "updateChunk":
		var msg worker.UpdateChunkMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("decode updateChunk: %w", err)
		}
		primary, updates := w.HandleUpdateChunk(msg)
		if err := out.Encode(primary); err != nil {
			return err
		}
		for _, u := range updates {
			if err := out.Encode(u); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unrecognized message type %q", msgType)
	}
}
