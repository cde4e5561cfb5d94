package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reelops/internal/export"
	"reelops/internal/pipeline"
)

var (
	runFile           string
	runTranscript     string
	runTranscriptFile string
	runTitle          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a campaign from a video or transcript",
	Long:  "Submits a video file or transcript to the agent pipeline and waits for the finalized campaign.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "video file to upload (mp4, mov, webm)")
	runCmd.Flags().StringVarP(&runTranscript, "transcript", "t", "", "transcript text")
	runCmd.Flags().StringVar(&runTranscriptFile, "transcript-file", "", "read the transcript from a file")
	runCmd.Flags().StringVar(&runTitle, "title", "", "video title")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	store, err := mustStore()
	if err != nil {
		return err
	}
	defer store.Close()

	transcript := runTranscript
	if runTranscriptFile != "" {
		data, err := os.ReadFile(runTranscriptFile)
		if err != nil {
			return fmt.Errorf("read transcript file: %w", err)
		}
		transcript = string(data)
	}

	coord := newCoordinator(cfg, store)
	req := pipeline.Request{FilePath: runFile, Transcript: transcript, VideoTitle: runTitle}
	if err := coord.Submit(cmd.Context(), req); err != nil {
		return err
	}

	snap := watch(coord)
	if snap.Status == pipeline.StatusError {
		return fmt.Errorf("campaign generation failed: %s", snap.Err)
	}

	if interactive() {
		fmt.Println()
	}
	fmt.Print(export.Summary(snap.VideoTitle, snap.Campaign))
	return nil
}

// watch polls the coordinator until the attempt finishes, printing stage
// transitions along the way when on a terminal.
func watch(coord *pipeline.Coordinator) pipeline.Snapshot {
	printed := map[string]bool{}
	lastStatus := pipeline.Status("")

	for {
		snap := coord.Snapshot()

		if interactive() {
			if snap.Status != lastStatus {
				lastStatus = snap.Status
				switch snap.Status {
				case pipeline.StatusUploading:
					fmt.Println(faintTxt.Render("uploading and transcribing..."))
				case pipeline.StatusOrchestrating:
					fmt.Println(faintTxt.Render("orchestrating agents..."))
				}
			}
			for _, st := range snap.Stages {
				if st.State == pipeline.StageCompleted && !printed[st.Name] {
					printed[st.Name] = true
					fmt.Printf("%s %s\n", okStyle.Render("●"), st.Name)
				}
			}
		}

		if snap.Status == pipeline.StatusCompleted || snap.Status == pipeline.StatusError {
			return snap
		}
		time.Sleep(100 * time.Millisecond)
	}
}
