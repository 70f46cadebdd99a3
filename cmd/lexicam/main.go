package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/lexicam/internal/detect"
	"github.com/ayusman/lexicam/internal/feedback"
	"github.com/ayusman/lexicam/internal/model"
	"github.com/ayusman/lexicam/internal/recognize"
	"github.com/ayusman/lexicam/internal/server"
	"github.com/ayusman/lexicam/internal/store"
	"github.com/ayusman/lexicam/internal/tray"
)

func main() {
	var (
		addr         = flag.String("addr", ":8080", "HTTP listen address")
		dbPath       = flag.String("db", "", "path to the database file (default ~/.lexicam/lexicam.db)")
		frontCamera  = flag.Int("camera", 0, "front camera device ID")
		rearCamera   = flag.Int("rear-camera", 1, "rear camera device ID")
		interval     = flag.Duration("interval", detect.DefaultInterval, "frame sampling interval")
		defaultModel = flag.String("model", "", "default object recognition model (path or URL)")
		ocrLanguage  = flag.String("ocr-lang", "eng", "tesseract language for text recognition")
		noTray       = flag.Bool("no-tray", false, "run without the system tray")
	)
	flag.Parse()

	fmt.Println("Lexicam - Camera Word Learning")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".lexicam")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *dbPath == "" {
		*dbPath = filepath.Join(dataDir, "lexicam.db")
	}
	st, err := store.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := st.Seed(); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	runtime := &model.DNNRuntime{
		DefaultModel: *defaultModel,
		CacheDir:     filepath.Join(dataDir, "models"),
	}
	loader := model.NewLoader(runtime)

	var ocr recognize.OCREngine
	if engine, err := recognize.NewTesseractEngine(*ocrLanguage); err != nil {
		log.Printf("Tesseract unavailable, text recognition disabled: %v", err)
	} else {
		ocr = engine
		defer engine.Close()
	}

	decoder := recognize.NewQRDecoder()
	defer decoder.Close()

	dispatcher := feedback.NewDispatcher(newSynthesizer(), newPlayer(), st.Settings())

	controller := detect.New(detect.Config{
		Store:         st,
		Loader:        loader,
		Interval:      *interval,
		FrontCameraID: *frontCamera,
		RearCameraID:  *rearCamera,
		OCR:           ocr,
		Decoder:       decoder,
		Announcer:     dispatcher,
	})
	defer controller.Stop()

	webDir := findWebDir(homeDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Detection: controller,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	t := tray.New()
	t.SetEnabled(st.Settings().CameraDetectionEnabled())
	t.OnToggle(func(enabled bool) {
		if err := controller.SetSetting(store.SettingCameraDetectionEnabled, enabled); err != nil {
			log.Printf("Failed to toggle camera detection: %v", err)
		}
	})
	t.OnQuit(func() {
		controller.Stop()
	})
	t.Run()
}

// newSynthesizer returns the host speech backend, or a silent one when no
// text-to-speech command is installed.
func newSynthesizer() feedback.Synthesizer {
	synth, err := feedback.NewCommandSynthesizer()
	if err != nil {
		log.Printf("No speech synthesis backend found, announcements will be silent: %v", err)
		return feedback.NullSynthesizer{}
	}
	return synth
}

// newPlayer returns the host audio playback backend, or a silent one.
func newPlayer() feedback.Player {
	player, err := feedback.NewCommandPlayer()
	if err != nil {
		log.Printf("No audio playback backend found, recorded clips disabled: %v", err)
		return feedback.NullPlayer{}
	}
	return player
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.lexicam/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(homeDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(homeDir, ".lexicam", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
