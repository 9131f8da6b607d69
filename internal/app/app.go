// Package app wires the application context: configuration, durable
// preferences, the session, and the task engine. Commands receive all
// shared state through this struct, never through globals.
package app

import (
	"context"

	"taskdeck/internal/backend/rest"
	"taskdeck/internal/config"
	"taskdeck/internal/engine"
	"taskdeck/internal/prefs"
	"taskdeck/internal/session"
	"taskdeck/internal/store"
)

// App is the explicit application context handed to every command.
type App struct {
	Config *config.Config
	Prefs  prefs.Preferences

	// Session is nil when unauthenticated.
	Session *session.Session
	Holder  *session.Holder

	Tasks store.TaskStore
	Users store.UserStore

	// Engine is non-nil only when a session is present.
	Engine *engine.Engine
}

// Init reads durable storage and builds the backend client with the held
// credential attached.
func Init(ctx context.Context, cfg *config.Config) (*App, error) {
	sess, err := session.Current(cfg)
	if err != nil {
		return nil, err
	}

	token := ""
	if sess != nil {
		token = sess.Token.AccessToken
	}
	client := rest.New(ctx, cfg.APIURL, token)

	a := &App{
		Config:  cfg,
		Prefs:   prefs.Load(cfg.PrefsPath()),
		Session: sess,
		Holder:  session.NewHolder(cfg, client),
		Tasks:   client,
		Users:   client,
	}
	if sess != nil {
		a.Engine = engine.New(client, sess.UserID)
	}
	return a, nil
}

// Teardown clears the session fields only; preferences survive.
func (a *App) Teardown() error {
	if err := a.Holder.Logout(); err != nil {
		return err
	}
	a.Session = nil
	a.Engine = nil
	return nil
}

// SavePrefs persists the current preferences. Best effort.
func (a *App) SavePrefs() {
	prefs.Save(a.Config.PrefsPath(), a.Prefs)
}
