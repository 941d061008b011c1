package notepub

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

// Output subdirectories.
const (
	ArticlesDir = "articles"
	TagsDir     = "tags"
)

// EnsureOutputDirs creates the output directory tree. It is idempotent.
func EnsureOutputDirs(root string) error {
	for _, dir := range []string{root, filepath.Join(root, ArticlesDir), filepath.Join(root, TagsDir), filepath.Join(root, imagesDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return nil
}

// ParseNote splits raw into header and body and builds the note record. A
// note with fewer than two delimiter lines has no header and is not public.
func ParseNote(p, raw string, times FileTimes) (Note, error) {
	header, body, ok := SplitFrontMatter(raw)
	var h Header
	if ok {
		var err error
		if h, err = ParseHeader(header); err != nil {
			return Note{}, &HeaderError{Path: p, Err: err}
		}
	}
	return BuildNote(p, times, h, body), nil
}

// Publisher runs publish cycles: discover, parse, filter, render, write and
// deploy.
type Publisher struct {
	cfg      Config
	renderer *Renderer
	walker   *Walker
	deployer Deployer
	history  Recorder
	logger   *log.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithDeployer replaces the deployer derived from Config.DeployCommand.
func WithDeployer(d Deployer) PublisherOption {
	return func(p *Publisher) { p.deployer = d }
}

// WithRecorder records every cycle, successful or not.
func WithRecorder(r Recorder) PublisherOption {
	return func(p *Publisher) { p.history = r }
}

// WithWalker replaces the default discovery rules.
func WithWalker(w *Walker) PublisherOption {
	return func(p *Publisher) { p.walker = w }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = l }
}

// NewPublisher creates a Publisher.
func NewPublisher(cfg Config, r *Renderer, opts ...PublisherOption) *Publisher {
	cfg.setDefaults()
	p := &Publisher{
		cfg:      cfg,
		renderer: r,
		walker:   DefaultWalker(cfg),
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.deployer == nil {
		p.deployer = NewDeployer(cfg, p.logger)
	}
	return p
}

// Publish runs one full cycle. Notes with a bad header or that fail to render
// are logged and skipped; any other error aborts the cycle and is returned.
func (p *Publisher) Publish(ctx context.Context) (Run, error) {
	run := Run{Started: time.Now()}
	err := p.publish(ctx, &run)
	run.Finished = time.Now()
	if err != nil {
		run.Err = err.Error()
	}
	if p.history != nil {
		if herr := p.history.Record(run); herr != nil {
			p.logger.Warnf("record publish history: %v", herr)
		}
	}
	return run, err
}

func (p *Publisher) publish(ctx context.Context, run *Run) error {
	if err := EnsureOutputDirs(p.cfg.OutputDir); err != nil {
		return err
	}

	notesFS := os.DirFS(p.cfg.NotesDir)
	files, err := p.walker.Discover(notesFS)
	if err != nil {
		return fmt.Errorf("discover %s: %w", p.cfg.NotesDir, err)
	}
	run.Scanned = len(files)

	out := newOutputWriter(p.cfg.OutputDir)
	assets := &assetSet{
		notes:    notesFS,
		maxWidth: p.cfg.MaxImageWidth,
		write:    out.write,
		warn:     p.logger.Warnf,
		done:     make(map[string]string),
	}
	slugs := slugSet{}

	var loaded []Note
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		note, err := p.load(notesFS, f)
		if err != nil {
			var he *HeaderError
			if errors.As(err, &he) {
				p.logger.Errorf("Error parsing YAML header: %v", err)
				run.Skipped++
				continue
			}
			return err
		}
		loaded = append(loaded, note)
	}

	var notes []Note
	for _, note := range FilterPublic(loaded) {
		slug, renamed := slugs.claim(note.Slug)
		if renamed {
			p.logger.Warnf("slug %q of %s already in use, writing %q", note.Slug, note.Path, slug)
		}
		note.Slug = slug

		page, err := p.renderArticle(ctx, &note, assets)
		if err != nil {
			p.logger.Errorf("%v", err)
			run.Skipped++
			continue
		}
		if err := out.write(note.Link(), page); err != nil {
			return err
		}
		notes = append(notes, note)
		run.Articles = append(run.Articles, note.Slug)
	}

	groups := GroupByYear(notes)
	index, err := p.renderer.RenderIndex(IndexData{SiteName: p.cfg.SiteName, YearPosts: groups})
	if err != nil {
		return err
	}
	if err := out.write("index.html", index); err != nil {
		return err
	}

	tags := TagIndex(notes)
	for _, t := range tags {
		page, err := p.renderer.RenderIndex(IndexData{
			SiteName:  p.cfg.SiteName,
			Tag:       t.Name,
			Root:      "../",
			YearPosts: GroupByYear(t.Notes),
		})
		if err != nil {
			return err
		}
		if err := out.write(TagsDir+"/"+t.Slug+".html", page); err != nil {
			return err
		}
	}

	if err := p.writeFeeds(out, groups, tags); err != nil {
		return err
	}

	out.prune(ArticlesDir, ".html", p.logger)
	out.prune(TagsDir, ".html", p.logger)
	out.prune(imagesDir, ".jpg", p.logger)

	run.Published = len(notes)
	p.logger.Infof("Published %d articles", len(notes))

	if err := p.deployer.Deploy(ctx, p.cfg.OutputDir); err != nil {
		return err
	}
	return nil
}

func (p *Publisher) load(fsys fs.FS, f File) (Note, error) {
	raw, err := fs.ReadFile(fsys, f.Path)
	if err != nil {
		return Note{}, fmt.Errorf("read %s: %w", f.Path, err)
	}
	times, err := StatTimes(filepath.Join(p.cfg.NotesDir, filepath.FromSlash(f.Path)))
	if err != nil {
		return Note{}, fmt.Errorf("stat %s: %w", f.Path, err)
	}
	return ParseNote(f.Path, string(raw), times)
}

func (p *Publisher) renderArticle(ctx context.Context, note *Note, assets *assetSet) ([]byte, error) {
	content, err := p.renderer.Markdown(ctx, note.Body, assets.resolver(note.Path))
	if err != nil {
		return nil, &RenderError{Path: note.Path, Err: err}
	}
	note.Content = content
	page, err := p.renderer.ExecArticle(ArticleData{
		Title:   note.Title,
		Date:    note.Created,
		Updated: note.Updated,
		Tags:    note.Tags,
		Root:    "../",
		Content: content,
	})
	if err != nil {
		return nil, &RenderError{Path: note.Path, Err: err}
	}
	return page, nil
}

func (p *Publisher) writeFeeds(out *outputWriter, groups []YearGroup, tags []TagPage) error {
	var ordered []Note
	for _, g := range groups {
		ordered = append(ordered, g.Posts...)
	}
	feed, err := RenderFeed(p.cfg, ordered)
	if err != nil {
		return fmt.Errorf("render feed: %w", err)
	}
	if err := out.write("feed.xml", feed); err != nil {
		return err
	}
	sitemap, err := RenderSitemap(p.cfg, ordered, tags)
	if err != nil {
		return fmt.Errorf("render sitemap: %w", err)
	}
	return out.write("sitemap.xml", sitemap)
}

// outputWriter writes files below root and remembers them for pruning.
type outputWriter struct {
	root    string
	written map[string]struct{}
}

func newOutputWriter(root string) *outputWriter {
	return &outputWriter{root: root, written: make(map[string]struct{})}
}

func (w *outputWriter) write(rel string, data []byte) error {
	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	w.written[rel] = struct{}{}
	return nil
}

// prune removes files with ext in dir that were not written this cycle.
func (w *outputWriter) prune(dir, ext string, logger *log.Logger) {
	entries, err := os.ReadDir(filepath.Join(w.root, dir))
	if err != nil {
		logger.Warnf("prune %s: %v", dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		rel := dir + "/" + e.Name()
		if _, ok := w.written[rel]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(w.root, dir, e.Name())); err != nil {
			logger.Warnf("prune %s: %v", rel, err)
			continue
		}
		logger.Debugf("removed stale %s", rel)
	}
}
