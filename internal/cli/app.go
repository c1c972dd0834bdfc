package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/dmitrijs2005/nichescope/internal/report"
	"github.com/dmitrijs2005/nichescope/internal/session"
)

type AccountService interface {
	Signup(ctx context.Context, name, email, credential string) (models.User, error)
	Login(ctx context.Context, email, credential string) (models.User, error)
}

type SessionService interface {
	Current(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

type SavedService interface {
	List(ctx context.Context, accountID string) ([]models.Niche, error)
	Save(ctx context.Context, accountID string, niche models.Niche) error
	Remove(ctx context.Context, accountID, nicheID string) error
	IsSaved(ctx context.Context, accountID, nicheID string) (bool, error)
	Count(ctx context.Context, accountID string) (int, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, topic string) (*models.AnalysisResult, error)
}

type Exporter interface {
	Export(ctx context.Context, sink report.Sink, title string, niches []models.Niche) (string, error)
}

// Deps are the components App drives. Analyzer may be nil when the
// completion service is not configured; searches then report that.
type Deps struct {
	Accounts AccountService
	Sessions SessionService
	Saved    SavedService
	Analyzer Analyzer
	Exporter Exporter
	Sink     report.Sink
	Log      logging.Logger
}

type App struct {
	deps Deps

	reader *bufio.Reader
	out    io.Writer

	sess    session.Context
	results *models.AnalysisResult
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	if d.Log == nil {
		d.Log = logging.NewNop()
	}
	return &App{deps: d, reader: bufio.NewReader(in), out: out, sess: session.NewContext(nil)}
}

// Run restores a persisted session, then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	u, err := a.deps.Sessions.Current(ctx)
	if err != nil {
		return err
	}
	a.sess = session.NewContext(u)

	printlnFn("Welcome to " + common.AppName + " (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.sess.LoggedIn()
}

func (a *App) status() string {
	if u := a.sess.User(); u != nil {
		return "(" + u.Name + ") "
	}
	return ""
}
