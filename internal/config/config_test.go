package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onsi/gomega"
)

func TestDefault(t *testing.T) {
	g := gomega.NewWithT(t)
	cfg := Default()
	g.Expect(cfg.Search.BaseURL).To(gomega.Equal("https://kat.cr/usearch/"))
	g.Expect(cfg.Timeout()).To(gomega.Equal(4 * time.Second))
	g.Expect(cfg.Output.Format).To(gomega.Equal("table"))
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	g := gomega.NewWithT(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	g.Expect(err).To(gomega.BeNil())
	g.Expect(cfg).To(gomega.Equal(Default()))
}

func TestLoadFrom_UnreadableFile(t *testing.T) {
	g := gomega.NewWithT(t)
	_, err := LoadFrom(t.TempDir())
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(err.Error()).To(gomega.ContainSubstring("reading config"))
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	g := gomega.NewWithT(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[search]\nweb_request_timeout = 12\n\n[qbittorrent]\nport = 9090\n"
	g.Expect(os.WriteFile(path, []byte(data), 0644)).To(gomega.Succeed())

	cfg, err := LoadFrom(path)
	g.Expect(err).To(gomega.BeNil())
	g.Expect(cfg.Timeout()).To(gomega.Equal(12 * time.Second))
	g.Expect(cfg.QBittorrent.Port).To(gomega.Equal(9090))
	g.Expect(cfg.QBittorrent.Host).To(gomega.Equal("localhost"))
	g.Expect(cfg.Search.BaseURL).To(gomega.Equal(Default().Search.BaseURL))
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	g := gomega.NewWithT(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	g.Expect(os.WriteFile(path, []byte("[search\n"), 0644)).To(gomega.Succeed())

	_, err := LoadFrom(path)
	g.Expect(err).To(gomega.HaveOccurred())
}

func TestSaveTo_RoundTrip(t *testing.T) {
	g := gomega.NewWithT(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Search.UserAgent = "kat-search/test"
	cfg.QBittorrent.SavePath = "/srv/torrents"
	g.Expect(SaveTo(path, cfg)).To(gomega.Succeed())

	back, err := LoadFrom(path)
	g.Expect(err).To(gomega.BeNil())
	g.Expect(back).To(gomega.Equal(cfg))
}
