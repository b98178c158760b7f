package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"mediascribe/internal/core/chat"
	"mediascribe/internal/core/config"
	"mediascribe/internal/core/logger"
	"mediascribe/internal/core/media"
	"mediascribe/internal/core/transcribe"
)

func runTranscribe(path string) error {
	cfg := config.LoadOrDefault()
	log := logger.New()

	if language != "" {
		cfg.Transcription.Language = language
	}
	if workers > 0 {
		cfg.Pipeline.Workers = workers
	}

	stdin := bufio.NewReader(os.Stdin)

	in, err := resolveInput(path, stdin)
	if err != nil {
		return err
	}

	fmt.Printf("Processing file: %s\n", in.Path)

	pipeline, err := transcribe.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(context.Background(), in)

	var text string
	switch {
	case err != nil:
		printFailureBanner(err)
		text, err = failureMenu(stdin)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
	case res.Text == "":
		// Pipeline worked but nothing was recognized.
		printFailureBanner(nil)
		text, err = failureMenu(stdin)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
	default:
		text = res.Text
		if res.FailedChunks > 0 {
			color.Yellow("Warning: %d of %d chunks could not be transcribed; the transcript has gaps.",
				res.FailedChunks, res.Chunks)
		}
		if res.Degraded {
			color.Yellow("Warning: chunking fell back to a single oversized segment.")
		}
	}

	transcript := chat.FormatTranscript(text)
	fmt.Printf("\nThis is the transcription of your file, %s.\n\n%s\n", in.Path, transcript)

	if noChat {
		return nil
	}
	return runQA(cfg, transcript, stdin)
}

// resolveInput validates the path (prompting for one when missing) and
// classifies it. Unrecognized extensions need an explicit go-ahead before
// the generic decoder has a try at them.
func resolveInput(path string, stdin *bufio.Reader) (media.Input, error) {
	for {
		if path == "" {
			fmt.Print("Enter path to your video/audio file (add extension): ")
			line, err := stdin.ReadString('\n')
			if err != nil {
				return media.Input{}, err
			}
			path = strings.TrimSpace(line)
			if path == "" {
				continue
			}
		}

		if _, err := os.Stat(path); err != nil {
			fmt.Printf("Error: file '%s' not found. Please try again.\n", path)
			path = ""
			continue
		}

		in, err := media.Classify(path)
		if errors.Is(err, media.ErrUnrecognizedExtension) {
			fmt.Printf("Warning: '%s' is not a common media extension. Continue anyway? (y/n): ", in.Ext())
			line, rerr := stdin.ReadString('\n')
			if rerr != nil {
				return media.Input{}, rerr
			}
			if strings.ToLower(strings.TrimSpace(line)) != "y" {
				path = ""
				continue
			}
			return in, nil
		}
		return in, err
	}
}

func printFailureBanner(err error) {
	sep := strings.Repeat("=", 50)
	fmt.Println("\n" + sep)
	fmt.Println("TRANSCRIPTION FAILED")
	if err != nil {
		fmt.Printf("Reason: %v\n", err)
	}
	fmt.Println("Possible reasons:")
	fmt.Println("1. Network connection issues")
	fmt.Println("2. Audio file too long or too large")
	fmt.Println("3. Poor audio quality")
	fmt.Println("4. Service limitations")
	fmt.Println(sep)
}

// failureMenu offers the caller-side alternatives after a failed run.
// Returns empty text when the user chose to abort.
func failureMenu(stdin *bufio.Reader) (string, error) {
	fmt.Println("\nSince transcription failed, you can:")
	fmt.Println("1. Enter the transcription manually")
	fmt.Println("2. Try again with a different file")
	fmt.Println("3. Use the Q&A system with custom text")
	fmt.Print("Enter your choice (1/2/3): ")

	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}

	switch strings.TrimSpace(line) {
	case "1":
		fmt.Print("Paste the transcription text here: ")
		text, err := stdin.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(text), nil
	case "2":
		fmt.Println("Please rerun with a different file.")
		return "", nil
	case "3":
		return "No transcription available. Please ask general questions.", nil
	default:
		return "", fmt.Errorf("invalid choice")
	}
}

func runQA(cfg *config.Config, transcript string, stdin *bufio.Reader) error {
	answerer, err := chat.New(cfg.Chat)
	if err != nil {
		color.Yellow("Chat is unavailable: %v", err)
		return nil
	}

	sep := strings.Repeat("=", 50)
	fmt.Println("\n" + sep)
	fmt.Println("You can now ask questions about the transcription!")
	fmt.Println("Type 'quit' to exit.")
	fmt.Println(sep)

	for {
		fmt.Print("\nYou: ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}
		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "quit", "exit", "bye":
			fmt.Println("Goodbye!")
			return nil
		}

		answer, err := answerer.Answer(context.Background(), chat.BuildPrompt(transcript, question))
		if err != nil {
			fmt.Printf("\nAgent Error: %v\n", err)
			continue
		}
		fmt.Printf("\nAgent: %s\n", answer)
	}
}
