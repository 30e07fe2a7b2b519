package sqlinline

// QListAnnouncements treats a NULL limit as no limit.
const QListAnnouncements = `--sql bfcd3364-623b-4b58-81af-167e9ef2708d
select id::text, title, content, priority, coalesce(created_by::text, ''), created_at
from announcements
order by created_at desc
limit $1::int;
`

const QInsertAnnouncement = `--sql de2262f9-e20a-454d-af14-4698e88d0bf2
insert into announcements(title, content, priority, created_by, created_at)
values ($1::text, $2::text, $3::text, nullif($4::text, '')::uuid, now())
returning id::text, created_at;
`
