package app

// Command は起動時に選択するアプリケーションのサブコマンドを表す。
type Command string

const (
	// CommandServe は投稿スケジューリングAPIサーバーとして起動する。
	CommandServe Command = "serve"
	// CommandMigrate はusers・postsスキーマのマイグレーションを実行して終了する。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck は稼働中のサーバーへ死活確認を行って終了する。
	// シェルを持たないdistrolessコンテナのHEALTHCHECK用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数の先頭からサブコマンドを解析する。
// 引数なし・未知のコマンドはいずれもserveとして扱う。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch c := Command(args[0]); c {
	case CommandServe, CommandMigrate, CommandHealthcheck:
		return c
	default:
		return CommandServe
	}
}
