package pkg

import (
	"crypto/tls"
	"fmt"

	"github.com/DennisDemir24/hobby-link/internal/config"

	"gopkg.in/gomail.v2"
)

func SendEmail(cfg config.SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// CommentNotifyHTML 帖子收到新评论时发给作者的通知邮件
func CommentNotifyHTML(postTitle, commenter, preview string) string {
	return fmt.Sprintf(
		`<p>Hi,</p><p><b>%s</b> commented on your post <b>%s</b>:</p><blockquote>%s</blockquote><p>Open HobbyLink to reply.</p>`,
		commenter, postTitle, preview)
}
