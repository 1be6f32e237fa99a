package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"

	"github.com/BLAZED-sh/jsonwriter/internal/workload"
	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
	"github.com/BLAZED-sh/jsonwriter/pkg/escape"
	"github.com/BLAZED-sh/jsonwriter/pkg/verify"
	"github.com/BLAZED-sh/jsonwriter/pkg/writer"
)

func main() {
	// CLI flag definitions
	// Workload options
	count := flag.Int("count", 100000, "Number of records to encode")
	kindName := flag.String("kind", "mixed", "Record kind (ints, floats, strings, mixed)")
	seed := flag.Int64("seed", 1, "Seed for record generation")
	rounds := flag.Int("rounds", 5, "Number of timed encoding rounds")

	// Buffer options
	bufferSize := flag.Int("buffer", 0, "Initial buffer capacity in bytes")
	unsafeLevel := flag.Int("unsafe-level", 16, "Extra bytes guaranteed after every reservation")

	// Encoding options
	quoteNumbers := flag.Bool("quote-numbers", false, "Write numbers as JSON strings")
	strictEscape := flag.Bool("strict-escape", false, "Escape control bytes as \\u00XX instead of the short table forms")

	// Output options
	verifyOutput := flag.Bool("verify", false, "Check the output with independent JSON parsers")
	outPath := flag.String("out", "", "Write the encoded records to this file")

	// Logging options
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	prettyLogs := flag.Bool("pretty", false, "Enable pretty logging output")

	// Other options
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Version info
	const version = "0.2.0"

	if *showVersion {
		fmt.Printf("jwbench version %s\n", version)
		os.Exit(0)
	}

	kind, err := workload.ParseKind(*kindName)
	if err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}
	if *count <= 0 || *rounds <= 0 {
		fmt.Println("Error: --count and --rounds must be positive")
		flag.Usage()
		os.Exit(1)
	}

	setupLogging(*logLevel, *prettyLogs)

	log.Info().
		Str("version", version).
		Str("go", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Bool("avx2", cpu.X86.HasAVX2).
		Bool("sse42", cpu.X86.HasSSE42).
		Bool("asimd", cpu.ARM64.HasASIMD).
		Msg("Host")

	records := workload.Generate(*seed, *count, kind)

	opts := writer.DefaultOptions()
	opts.QuoteNumbers = *quoteNumbers
	if *strictEscape {
		opts.Escape = escape.StrictPolicy()
	}

	buf, err := buffer.New(*bufferSize,
		buffer.WithUnsafeLevel(*unsafeLevel),
		buffer.WithLogger(log.Logger.With().Str("component", "buffer").Logger()),
	)
	if err != nil {
		log.Fatal().Err(err).Int("buffer", *bufferSize).Msg("Failed to allocate buffer")
	}
	w := writer.New(buf, opts)

	best := time.Duration(0)
	for i := 0; i < *rounds; i++ {
		buf.Reset()
		start := time.Now()
		if err := workload.Encode(w, kind, records); err != nil {
			log.Fatal().Err(err).Int("round", i).Msg("Encoding failed")
		}
		elapsed := time.Since(start)
		if best == 0 || elapsed < best {
			best = elapsed
		}
		log.Debug().Int("round", i).Dur("elapsed", elapsed).Int("bytes", buf.Len()).Msg("Round finished")
	}

	baseline, baselineBytes := runBaseline(kind, records, *rounds)

	log.Info().
		Str("kind", string(kind)).
		Int("records", len(records)).
		Int("bytes", buf.Len()).
		Int("alloc_size", buf.AllocSize()).
		Dur("best", best).
		Float64("mb_per_s", throughput(buf.Len(), best)).
		Dur("jsoniter_best", baseline).
		Float64("jsoniter_mb_per_s", throughput(baselineBytes, baseline)).
		Msg("Benchmark finished")

	if *verifyOutput {
		n, err := verify.CheckStream(context.Background(), bytes.NewReader(buf.Bytes()), verify.DefaultSplitterConfig())
		if err != nil {
			log.Error().Err(err).Int("valid_records", n).Msg("Output failed verification")
			os.Exit(2)
		}
		log.Info().Int("records", n).Msg("Output verified")
	}

	if *outPath != "" {
		if err := writeOutput(*outPath, buf); err != nil {
			log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write output")
		}
		log.Debug().Str("path", *outPath).Int("bytes", buf.Len()).Msg("Output written")
	}
}

func runBaseline(kind workload.Kind, records []workload.Record, rounds int) (time.Duration, int) {
	stream := jsoniter.NewStream(jsoniter.ConfigFastest, nil, 1<<16)
	best := time.Duration(0)
	for i := 0; i < rounds; i++ {
		stream.Reset(nil)
		start := time.Now()
		if err := workload.EncodeJsoniter(stream, kind, records); err != nil {
			log.Warn().Err(err).Msg("Baseline encoding failed")
			return 0, 0
		}
		if elapsed := time.Since(start); best == 0 || elapsed < best {
			best = elapsed
		}
	}
	return best, len(stream.Buffer())
}

func throughput(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / (1 << 20)
}

func writeOutput(path string, buf *buffer.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func setupLogging(level string, pretty bool) {
	// Set log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
