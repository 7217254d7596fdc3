// Package email defines the Sender interface used by digest delivery
// backends that address one recipient at a time, plus two implementations:
// a Postmark-backed transactional sender and a filesystem sender for local
// development.
//
// # Usage
//
//	var cfg email.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	sender, err := email.NewPostmarkSender(cfg)
//	if err != nil {
//	    return err
//	}
//
//	err = sender.Send(ctx, email.Message{
//	    To:      "user@example.com",
//	    Subject: "Recently added to your library",
//	    HTML:    html,
//	    Tag:     "media-digest",
//	})
//
// During development, swap the Postmark sender for a DevSender to inspect
// rendered digests on disk:
//
//	sender := email.NewDevSender("./tmp/emails")
//
// Each sent message is written as a timestamped .html file alongside a .json
// metadata file.
package email
